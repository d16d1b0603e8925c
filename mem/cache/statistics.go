package cache

import "github.com/sarchlab/rripcache/stats"

// Statistics are the counters a cache reports.
type Statistics struct {
	Group *stats.Group

	Hits        *stats.Scalar
	Misses      *stats.Scalar
	Evictions   *stats.Scalar
	Writebacks  *stats.Scalar
	MissLatency *stats.Histogram
	HitRatio    *stats.Formula
}

func newStatistics(name string) *Statistics {
	s := &Statistics{
		Group:      stats.NewGroup(name),
		Hits:       stats.NewScalar("hits", "number of hits", "count"),
		Misses:     stats.NewScalar("misses", "number of misses", "count"),
		Evictions:  stats.NewScalar("evictions", "number of valid lines replaced", "count"),
		Writebacks: stats.NewScalar("writebacks", "number of dirty lines written back", "count"),
		MissLatency: stats.NewHistogram("miss_latency",
			"cycles from detecting a miss to filling the line", "cycle", 16),
	}

	accesses := func() float64 {
		return s.Hits.Value() + s.Misses.Value()
	}
	s.HitRatio = stats.NewFormula("hit_ratio", "hits per access", "ratio",
		func() float64 {
			total := accesses()
			if total == 0 {
				return 0
			}

			return s.Hits.Value() / total
		})

	s.Group.Add(s.Hits)
	s.Group.Add(s.Misses)
	s.Group.Add(s.HitRatio)
	s.Group.Add(s.MissLatency)
	s.Group.Add(s.Evictions)
	s.Group.Add(s.Writebacks)

	return s
}
