// Package simulation puts together the engine, the recorders and the monitor
// that a simulation run needs.
package simulation

import (
	"errors"

	"github.com/sarchlab/rripcache/datarecording"
	"github.com/sarchlab/rripcache/monitoring"
	"github.com/sarchlab/rripcache/sim"
	"github.com/sarchlab/rripcache/stats"
	"github.com/sarchlab/rripcache/tracing"
)

// A Simulation provides the service requires to define a simulation.
type Simulation struct {
	id     string
	engine sim.Engine

	dataRecorder  datarecording.DataRecorder
	execRecorder  *datarecording.ExecRecorder
	statsRecorder *stats.Recorder
	visTracer     *tracing.DBTracer
	monitor       *monitoring.Monitor
	monitorURL    string

	components    []sim.Component
	compNameIndex map[string]int
	statGroups    []*stats.Group
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder used in the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is off.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorURL returns the address of the monitoring server.
func (s *Simulation) MonitorURL() string {
	return s.monitorURL
}

// GetVisTracer returns the tracer used in the simulation.
func (s *Simulation) GetVisTracer() *tracing.DBTracer {
	return s.visTracer
}

// RegisterComponent registers a component with the simulation.
func (s *Simulation) RegisterComponent(c sim.Component) {
	compName := c.Name()
	if _, found := s.compNameIndex[compName]; found {
		panic("component " + compName + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

// RegisterStats registers statistics to be recorded when the simulation
// terminates.
func (s *Simulation) RegisterStats(g *stats.Group) {
	s.statGroups = append(s.statGroups, g)

	if s.monitor != nil {
		s.monitor.RegisterStats(g)
	}
}

// RecordExecInfo records a property of the run, such as a parameter.
func (s *Simulation) RecordExecInfo(property, value string) {
	s.execRecorder.Record(property, value)
}

// GetComponentByName returns the component with the given name.
func (s *Simulation) GetComponentByName(name string) sim.Component {
	i, found := s.compNameIndex[name]
	if !found {
		return nil
	}

	return s.components[i]
}

// Components returns all the registered components.
func (s *Simulation) Components() []sim.Component {
	return s.components
}

// StatGroups returns all the registered statistics.
func (s *Simulation) StatGroups() []*stats.Group {
	return s.statGroups
}

// Terminate records the statistics and the execution info and flushes the
// recorder.
func (s *Simulation) Terminate() error {
	s.engine.Finished()

	return errors.Join(
		s.statsRecorder.Record(s.statGroups...),
		s.execRecorder.End(),
		s.visTracer.Terminate(),
	)
}
