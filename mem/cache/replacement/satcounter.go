package replacement

import "fmt"

// SatCounter is an unsigned counter of a fixed bit width that sticks at its
// bounds instead of wrapping.
type SatCounter struct {
	max   uint64
	value uint64
}

// NewSatCounter creates a counter of numBits bits holding the initial value.
func NewSatCounter(numBits int, initial uint64) SatCounter {
	if numBits <= 0 || numBits > 64 {
		panic(fmt.Sprintf("saturating counter needs 1 to 64 bits, got %d",
			numBits))
	}

	c := SatCounter{max: ^uint64(0) >> (64 - numBits)}
	if initial > c.max {
		panic(fmt.Sprintf("initial value %d does not fit in %d bits",
			initial, numBits))
	}

	c.value = initial

	return c
}

// Value returns the current count.
func (c *SatCounter) Value() uint64 {
	return c.value
}

// Max returns the saturation value.
func (c *SatCounter) Max() uint64 {
	return c.max
}

// IsSaturated returns true if the counter is at its maximum.
func (c *SatCounter) IsSaturated() bool {
	return c.value == c.max
}

// Increment adds one unless saturated.
func (c *SatCounter) Increment() {
	c.Add(1)
}

// Decrement subtracts one unless zero.
func (c *SatCounter) Decrement() {
	if c.value > 0 {
		c.value--
	}
}

// Add adds n, stopping at the maximum.
func (c *SatCounter) Add(n uint64) {
	if n > c.max-c.value {
		c.value = c.max
		return
	}

	c.value += n
}

// Saturate sets the counter to its maximum.
func (c *SatCounter) Saturate() {
	c.value = c.max
}

// Reset sets the counter to zero.
func (c *SatCounter) Reset() {
	c.value = 0
}
