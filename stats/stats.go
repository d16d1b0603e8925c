// Package stats collects named simulation statistics and reports them.
package stats

import "fmt"

// A Stat is a named statistic.
type Stat interface {
	Name() string
	Desc() string
	Unit() string

	// Value summarizes the statistic as a single number.
	Value() float64

	// Reset returns the statistic to its initial state.
	Reset()
}

type info struct {
	name string
	desc string
	unit string
}

func newInfo(name, desc, unit string) info {
	if name == "" {
		panic("stat name must not be empty")
	}

	return info{name: name, desc: desc, unit: unit}
}

func (i info) Name() string { return i.name }
func (i info) Desc() string { return i.desc }
func (i info) Unit() string { return i.unit }

// Scalar is a single accumulated value.
type Scalar struct {
	info
	value float64
}

// NewScalar creates a Scalar.
func NewScalar(name, desc, unit string) *Scalar {
	return &Scalar{info: newInfo(name, desc, unit)}
}

// Inc adds one.
func (s *Scalar) Inc() {
	s.value++
}

// Add adds v.
func (s *Scalar) Add(v float64) {
	s.value += v
}

// Value returns the accumulated value.
func (s *Scalar) Value() float64 {
	return s.value
}

// Reset sets the value back to zero.
func (s *Scalar) Reset() {
	s.value = 0
}

// Formula is a statistic computed from other statistics when read.
type Formula struct {
	info
	fn func() float64
}

// NewFormula creates a Formula.
func NewFormula(name, desc, unit string, fn func() float64) *Formula {
	if fn == nil {
		panic(fmt.Sprintf("formula %s has no function", name))
	}

	return &Formula{info: newInfo(name, desc, unit), fn: fn}
}

// Value evaluates the formula.
func (f *Formula) Value() float64 {
	return f.fn()
}

// Reset does nothing; a formula follows its operands.
func (f *Formula) Reset() {}

// Ratio returns a/b, or zero when b is zero.
func Ratio(a, b Stat) func() float64 {
	return func() float64 {
		d := b.Value()
		if d == 0 {
			return 0
		}

		return a.Value() / d
	}
}
