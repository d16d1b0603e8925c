package replacement

import "fmt"

// RRIPMetadata is the state of a line under SRRIP or DRRIP.
type RRIPMetadata struct {
	RRPV  SatCounter
	Valid bool
	SetID int
}

func asRRIP(m Metadata) *RRIPMetadata {
	rrip, ok := m.(*RRIPMetadata)
	if !ok {
		panic(fmt.Sprintf("metadata %T is not RRIP metadata", m))
	}

	return rrip
}

// SRRIP is static re-reference interval prediction. Each line holds a
// re-reference prediction value (RRPV). The line with the highest RRPV is
// predicted to be reused last and is evicted first.
type SRRIP struct {
	numBits     int
	hitPriority bool
}

// NewSRRIP creates an SRRIP policy with RRPVs of numBits bits. With
// hitPriority, a hit predicts a near-immediate re-reference; otherwise a hit
// only lowers the RRPV by one.
func NewSRRIP(numBits int, hitPriority bool) *SRRIP {
	if numBits <= 0 {
		panic(fmt.Sprintf("RRPV needs at least one bit, got %d", numBits))
	}

	return &SRRIP{
		numBits:     numBits,
		hitPriority: hitPriority,
	}
}

// InstantiateMetadata creates an invalid line with a distant RRPV.
func (p *SRRIP) InstantiateMetadata(setID int) Metadata {
	m := &RRIPMetadata{
		RRPV:  NewSatCounter(p.numBits, 0),
		SetID: setID,
	}
	m.RRPV.Saturate()

	return m
}

// Touch lowers the RRPV of a line that was hit.
func (p *SRRIP) Touch(m Metadata) {
	rrip := asRRIP(m)

	if p.hitPriority {
		rrip.RRPV.Reset()
		return
	}

	rrip.RRPV.Decrement()
}

// Reset gives a newly filled line a long re-reference interval.
func (p *SRRIP) Reset(m Metadata) {
	rrip := asRRIP(m)

	rrip.RRPV.Saturate()
	rrip.RRPV.Decrement()
	rrip.Valid = true
}

// Invalidate marks the line empty.
func (p *SRRIP) Invalidate(m Metadata) {
	asRRIP(m).Valid = false
}

// FindVictim returns the first invalid candidate if there is one. Otherwise it
// returns the first candidate with the highest RRPV, and ages every candidate
// so that the victim's RRPV reaches the maximum.
func (p *SRRIP) FindVictim(candidates []Candidate) Candidate {
	return findRRIPVictim(candidates)
}

func findRRIPVictim(candidates []Candidate) Candidate {
	mustHaveCandidates(candidates)

	victim := candidates[0]
	victimMeta := asRRIP(victim.ReplacementMetadata())

	for _, c := range candidates {
		m := asRRIP(c.ReplacementMetadata())

		if !m.Valid {
			return c
		}

		if m.RRPV.Value() > victimMeta.RRPV.Value() {
			victim = c
			victimMeta = m
		}
	}

	if victimMeta.RRPV.IsSaturated() {
		return victim
	}

	diff := victimMeta.RRPV.Max() - victimMeta.RRPV.Value()
	for _, c := range candidates {
		asRRIP(c.ReplacementMetadata()).RRPV.Add(diff)
	}

	return victim
}
