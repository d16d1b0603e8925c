package sim

import (
	"fmt"
	"math"
)

// Freq defines the type of frequency.
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time between two consecutive ticks, in seconds.
func (f Freq) Period() float64 {
	if f <= 0 {
		panic(fmt.Sprintf("invalid frequency %f", float64(f)))
	}

	return 1.0 / float64(f)
}

// Seconds converts a number of cycles of this frequency to seconds.
func (f Freq) Seconds(cycles VTimeInCycle) float64 {
	return float64(cycles) * f.Period()
}

// Cycles converts a duration in seconds to the number of whole cycles that
// fit in it, rounding to the nearest cycle.
func (f Freq) Cycles(seconds float64) VTimeInCycle {
	if seconds < 0 || math.IsNaN(seconds) {
		panic(fmt.Sprintf("invalid duration %f", seconds))
	}

	return VTimeInCycle(math.Round(seconds * float64(f)))
}
