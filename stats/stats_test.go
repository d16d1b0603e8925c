package stats_test

import (
	"bytes"
	"database/sql"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rripcache/datarecording"
	"github.com/sarchlab/rripcache/stats"
)

var _ = Describe("Scalar and Formula", func() {
	It("should compute a ratio that follows its operands", func() {
		hits := stats.NewScalar("hits", "number of hits", "count")
		accesses := stats.NewScalar("accesses", "number of accesses", "count")
		ratio := stats.NewFormula("hit_ratio", "hits per access", "ratio",
			stats.Ratio(hits, accesses))

		Expect(ratio.Value()).To(Equal(0.0))

		hits.Inc()
		accesses.Add(4)
		Expect(ratio.Value()).To(Equal(0.25))

		hits.Reset()
		Expect(ratio.Value()).To(Equal(0.0))
	})

	It("should panic without a name", func() {
		Expect(func() { stats.NewScalar("", "", "") }).To(Panic())
	})
})

var _ = Describe("Histogram", func() {
	It("should summarize samples", func() {
		h := stats.NewHistogram("lat", "latency", "cycle", 4)

		h.Sample(1)
		h.Sample(3)

		Expect(h.Count()).To(Equal(uint64(2)))
		Expect(h.Mean()).To(Equal(2.0))
		Expect(h.Min()).To(Equal(1.0))
		Expect(h.Max()).To(Equal(3.0))
		Expect(h.Buckets()).To(Equal([]uint64{0, 1, 0, 1}))
	})

	It("should double the bucket size for large samples", func() {
		h := stats.NewHistogram("lat", "latency", "cycle", 4)
		h.Sample(0)
		h.Sample(3)

		h.Sample(9)

		Expect(h.BucketSize()).To(Equal(4.0))
		Expect(h.Buckets()).To(Equal([]uint64{2, 0, 1, 0}))
	})

	It("should panic on negative samples or odd bucket counts", func() {
		h := stats.NewHistogram("lat", "latency", "cycle", 4)

		Expect(func() { h.Sample(-1) }).To(Panic())
		Expect(func() { stats.NewHistogram("x", "", "", 3) }).To(Panic())
	})

	It("should report zeros when empty", func() {
		h := stats.NewHistogram("lat", "latency", "cycle", 4)

		Expect(h.Mean()).To(Equal(0.0))
		Expect(h.Min()).To(Equal(0.0))
		Expect(h.Max()).To(Equal(0.0))
	})
})

var _ = Describe("Group", func() {
	var group *stats.Group

	BeforeEach(func() {
		group = stats.NewGroup("Cache")
		hits := stats.NewScalar("hits", "number of hits", "count")
		hits.Add(3)
		group.Add(hits)
	})

	It("should reject duplicated names", func() {
		Expect(func() {
			group.Add(stats.NewScalar("hits", "", ""))
		}).To(Panic())
	})

	It("should dump a table", func() {
		buf := new(bytes.Buffer)

		Expect(group.Dump(buf)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("Cache.hits"))
		Expect(buf.String()).To(ContainSubstring("# number of hits"))
	})

	It("should reset every statistic", func() {
		group.Reset()

		s, ok := group.Lookup("hits")
		Expect(ok).To(BeTrue())
		Expect(s.Value()).To(Equal(0.0))
	})

	It("should record entries into a database", func() {
		db, err := sql.Open("sqlite3",
			filepath.Join(GinkgoT().TempDir(), "stats.sqlite3"))
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		recorder := stats.NewRecorder(datarecording.NewWithDB(db), "stats")
		Expect(recorder.Record(group)).To(Succeed())

		var value float64
		err = db.QueryRow(
			"SELECT Value FROM stats WHERE Component = 'Cache' AND Stat = 'hits'",
		).Scan(&value)
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal(3.0))
	})
})
