package stats

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/rripcache/datarecording"
)

// Entry is a row of a statistics dump.
type Entry struct {
	Component string
	Stat      string
	Value     float64
	Unit      string
}

// A Group holds the statistics of one component.
type Group struct {
	name  string
	stats []Stat
	index map[string]Stat
}

// NewGroup creates an empty Group.
func NewGroup(name string) *Group {
	return &Group{
		name:  name,
		index: make(map[string]Stat),
	}
}

// Name returns the name of the group.
func (g *Group) Name() string {
	return g.name
}

// Add registers a statistic. Names must be unique within a group.
func (g *Group) Add(s Stat) {
	if _, exists := g.index[s.Name()]; exists {
		panic(fmt.Sprintf("stat %s already exists in group %s",
			s.Name(), g.name))
	}

	g.stats = append(g.stats, s)
	g.index[s.Name()] = s
}

// Stats returns the statistics in registration order.
func (g *Group) Stats() []Stat {
	return g.stats
}

// Lookup finds a statistic by name.
func (g *Group) Lookup(name string) (Stat, bool) {
	s, ok := g.index[name]
	return s, ok
}

// Reset resets every statistic of the group.
func (g *Group) Reset() {
	for _, s := range g.stats {
		s.Reset()
	}
}

// Entries returns one row per statistic.
func (g *Group) Entries() []Entry {
	entries := make([]Entry, 0, len(g.stats))
	for _, s := range g.stats {
		entries = append(entries, Entry{
			Component: g.name,
			Stat:      s.Name(),
			Value:     s.Value(),
			Unit:      s.Unit(),
		})
	}

	return entries
}

// Dump writes a human-readable table of the statistics.
func (g *Group) Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, s := range g.stats {
		_, err := fmt.Fprintf(tw, "%s.%s\t%.6g\t%s\t# %s\n",
			g.name, s.Name(), s.Value(), s.Unit(), s.Desc())
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}

// Recorder writes statistic groups into a DataRecorder.
type Recorder struct {
	recorder  datarecording.DataRecorder
	tableName string
}

// NewRecorder creates a table for statistics in the recorder.
func NewRecorder(
	recorder datarecording.DataRecorder,
	tableName string,
) *Recorder {
	recorder.CreateTable(tableName, Entry{})

	return &Recorder{recorder: recorder, tableName: tableName}
}

// Record inserts the current value of every statistic of the groups.
func (r *Recorder) Record(groups ...*Group) error {
	for _, g := range groups {
		for _, e := range g.Entries() {
			r.recorder.InsertData(r.tableName, e)
		}
	}

	return r.recorder.Flush()
}
