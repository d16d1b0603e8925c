package simulation

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/sarchlab/rripcache/datarecording"
	"github.com/sarchlab/rripcache/monitoring"
	"github.com/sarchlab/rripcache/sim"
	"github.com/sarchlab/rripcache/stats"
	"github.com/sarchlab/rripcache/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	outputFileName string
	dataRecorder   datarecording.DataRecorder
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		monitorOn: true,
	}
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithDataRecorder makes the simulation record into the given recorder
// instead of a new SQLite file.
func (b Builder) WithDataRecorder(recorder datarecording.DataRecorder) Builder {
	b.dataRecorder = recorder
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if b.dataRecorder != nil && b.outputFileName != "" {
		panic("output file name cannot be set with a custom data recorder")
	}
}

// Build builds the simulation.
func (b Builder) Build() (*Simulation, error) {
	b.parametersMustBeValid()

	s := &Simulation{
		id:            xid.New().String(),
		compNameIndex: make(map[string]int),
	}

	s.dataRecorder = b.dataRecorder
	if s.dataRecorder == nil {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "cachesim_" + s.id
		}

		recorder, err := datarecording.New(outputPath)
		if err != nil {
			return nil, fmt.Errorf("creating data recorder: %w", err)
		}

		s.dataRecorder = recorder
	}

	s.engine = sim.NewSerialEngine()
	s.visTracer = tracing.NewDBTracer(s.engine, s.dataRecorder)
	s.execRecorder = datarecording.NewExecRecorder(s.dataRecorder)
	s.statsRecorder = stats.NewRecorder(s.dataRecorder, "stats")
	s.execRecorder.Start()

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterEngine(s.engine)
		s.monitorURL = s.monitor.StartServer()
	}

	return s, nil
}
