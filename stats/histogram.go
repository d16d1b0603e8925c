package stats

import (
	"fmt"
	"math"
)

// Histogram distributes non-negative samples into a fixed number of equally
// sized buckets. When a sample falls beyond the last bucket, the bucket size
// doubles and neighboring buckets merge.
type Histogram struct {
	info

	buckets    []uint64
	bucketSize float64

	count uint64
	sum   float64
	min   float64
	max   float64
}

// NewHistogram creates a Histogram with numBuckets buckets of size one.
func NewHistogram(name, desc, unit string, numBuckets int) *Histogram {
	if numBuckets < 2 || numBuckets%2 != 0 {
		panic(fmt.Sprintf("histogram %s needs an even number of buckets, got %d",
			name, numBuckets))
	}

	h := &Histogram{
		info:    newInfo(name, desc, unit),
		buckets: make([]uint64, numBuckets),
	}
	h.Reset()

	return h
}

// Sample adds one sample.
func (h *Histogram) Sample(v float64) {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("histogram %s cannot take sample %f", h.name, v))
	}

	for v >= h.bucketSize*float64(len(h.buckets)) {
		h.grow()
	}

	h.buckets[int(v/h.bucketSize)]++
	h.count++
	h.sum += v
	h.min = math.Min(h.min, v)
	h.max = math.Max(h.max, v)
}

func (h *Histogram) grow() {
	half := len(h.buckets) / 2

	for i := 0; i < half; i++ {
		h.buckets[i] = h.buckets[2*i] + h.buckets[2*i+1]
	}

	for i := half; i < len(h.buckets); i++ {
		h.buckets[i] = 0
	}

	h.bucketSize *= 2
}

// Count returns the number of samples.
func (h *Histogram) Count() uint64 {
	return h.count
}

// Mean returns the average sample, or zero without samples.
func (h *Histogram) Mean() float64 {
	if h.count == 0 {
		return 0
	}

	return h.sum / float64(h.count)
}

// Min returns the smallest sample, or zero without samples.
func (h *Histogram) Min() float64 {
	if h.count == 0 {
		return 0
	}

	return h.min
}

// Max returns the largest sample, or zero without samples.
func (h *Histogram) Max() float64 {
	if h.count == 0 {
		return 0
	}

	return h.max
}

// BucketSize returns the width of each bucket.
func (h *Histogram) BucketSize() float64 {
	return h.bucketSize
}

// Buckets returns a copy of the bucket counts.
func (h *Histogram) Buckets() []uint64 {
	return append([]uint64(nil), h.buckets...)
}

// Value returns the mean.
func (h *Histogram) Value() float64 {
	return h.Mean()
}

// Reset drops all the samples.
func (h *Histogram) Reset() {
	for i := range h.buckets {
		h.buckets[i] = 0
	}

	h.bucketSize = 1
	h.count = 0
	h.sum = 0
	h.min = math.Inf(1)
	h.max = math.Inf(-1)
}
