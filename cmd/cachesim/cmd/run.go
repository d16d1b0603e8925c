package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/rripcache/datarecording"
	"github.com/sarchlab/rripcache/mem"
	"github.com/sarchlab/rripcache/mem/acceptancetests/memaccessagent"
	"github.com/sarchlab/rripcache/mem/cache"
	"github.com/sarchlab/rripcache/mem/idealmemcontroller"
	"github.com/sarchlab/rripcache/monitoring"
	"github.com/sarchlab/rripcache/sim"
	"github.com/sarchlab/rripcache/simulation"
	"github.com/sarchlab/rripcache/tracing"
)

// ErrDataMismatch is returned when a read does not return the last value
// written to its address.
var ErrDataMismatch = errors.New("read data mismatch")

type runConfig struct {
	blockSize    uint64
	byteSize     uint64
	ways         int
	latency      uint64
	policy       string
	rrpvBits     int
	hitPriority  bool
	btp          int
	constituency int
	noWriteBack  bool
	seed         uint64
	freqGHz      float64

	requesters  int
	accesses    int
	accessSize  uint64
	addrRange   uint64
	memLatency  uint64
	memWidth    int
	memCapacity uint64

	output      string
	recorderDSN string
	monitor     bool
	monitorPort int
	openMonitor bool
	traceLog    bool
	logEvents   bool
}

var cfg runConfig

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a random workload through the cache",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := applyEnv(cmd.Flags()); err != nil {
			return err
		}

		return run(cfg, cmd.OutOrStdout())
	},
}

func init() {
	f := runCmd.Flags()

	f.Uint64Var(&cfg.blockSize, "block-size", 64, "Cache line size in bytes")
	f.Uint64Var(&cfg.byteSize, "size", 16*mem.KB, "Cache capacity in bytes")
	f.IntVar(&cfg.ways, "ways", 4, "Number of lines per set")
	f.Uint64Var(&cfg.latency, "latency", 2, "Cache access latency in cycles")
	f.StringVar(&cfg.policy, "policy", cache.PolicySRRIP,
		"Replacement policy: srrip, drrip or lru")
	f.IntVar(&cfg.rrpvBits, "rrpv-bits", 2, "Width of the RRPV counters")
	f.BoolVar(&cfg.hitPriority, "hit-priority", false,
		"Reset the RRPV to 0 on a hit instead of decrementing it")
	f.IntVar(&cfg.btp, "btp", 3,
		"Percentage of bimodal insertions with a long re-reference interval")
	f.IntVar(&cfg.constituency, "constituency", 32,
		"Number of sets sharing one pair of leader sets")
	f.BoolVar(&cfg.noWriteBack, "no-writeback", false,
		"Drop dirty lines on eviction")
	f.Uint64Var(&cfg.seed, "seed", 1, "Random seed")
	f.Float64Var(&cfg.freqGHz, "freq-ghz", 1,
		"Clock frequency used to report the simulated time")

	f.IntVar(&cfg.requesters, "requesters", 1, "Number of requesters")
	f.IntVar(&cfg.accesses, "accesses", 10000,
		"Number of reads and of writes issued by each requester")
	f.Uint64Var(&cfg.accessSize, "access-size", 4, "Bytes per access")
	f.Uint64Var(&cfg.addrRange, "address-range", 64*mem.KB,
		"Bytes of address space used by each requester")
	f.Uint64Var(&cfg.memLatency, "mem-latency", 100,
		"Memory latency in cycles")
	f.IntVar(&cfg.memWidth, "mem-width", 1,
		"Number of requests the memory serves at the same time")
	f.Uint64Var(&cfg.memCapacity, "mem-capacity", 4*mem.GB,
		"Memory capacity in bytes")

	f.StringVar(&cfg.output, "output", "",
		"Name of the SQLite output file, without extension")
	f.StringVar(&cfg.recorderDSN, "recorder-dsn", "",
		"Record into ClickHouse at this DSN instead of SQLite")
	f.BoolVar(&cfg.monitor, "monitor", false, "Start the monitoring server")
	f.IntVar(&cfg.monitorPort, "monitor-port", 0,
		"Port of the monitoring server, random if 0")
	f.BoolVar(&cfg.openMonitor, "open-monitor", false,
		"Open the monitoring page in a browser")
	f.BoolVar(&cfg.traceLog, "trace-log", false,
		"Print every cache task to stderr")
	f.BoolVar(&cfg.logEvents, "log-events", false,
		"Print every event to stderr")

	rootCmd.AddCommand(runCmd)
}

func (c runConfig) validate() error {
	if c.requesters <= 0 {
		return fmt.Errorf("requesters must be positive, got %d", c.requesters)
	}

	if c.accesses < 0 {
		return fmt.Errorf("accesses must not be negative, got %d", c.accesses)
	}

	if c.accessSize > c.blockSize {
		return fmt.Errorf("access size %d is larger than the block size %d",
			c.accessSize, c.blockSize)
	}

	if c.addrRange*uint64(c.requesters) > c.memCapacity {
		return fmt.Errorf("%d requesters of %d bytes exceed the memory",
			c.requesters, c.addrRange)
	}

	if c.freqGHz <= 0 {
		return fmt.Errorf("frequency must be positive, got %g", c.freqGHz)
	}

	if c.openMonitor && !c.monitor {
		return errors.New("--open-monitor requires --monitor")
	}

	if c.recorderDSN != "" && c.output != "" {
		return errors.New("--output and --recorder-dsn are exclusive")
	}

	return nil
}

// system holds the components of one run.
type system struct {
	sim    *simulation.Simulation
	cache  *cache.Comp
	memory *idealmemcontroller.Comp
	agents []*memaccessagent.MemAccessAgent
	avg    *tracing.AverageTimeTracer
}

func buildSimulation(c runConfig) (*simulation.Simulation, error) {
	b := simulation.MakeBuilder()

	if c.recorderDSN != "" {
		recorder, err := datarecording.NewClickHouse(c.recorderDSN)
		if err != nil {
			return nil, err
		}

		b = b.WithDataRecorder(recorder)
	} else if c.output != "" {
		b = b.WithOutputFileName(c.output)
	}

	if !c.monitor {
		b = b.WithoutMonitoring()
	} else if c.monitorPort != 0 {
		b = b.WithMonitorPort(c.monitorPort)
	}

	return b.Build()
}

func buildSystem(c runConfig, s *simulation.Simulation) *system {
	engine := s.GetEngine()

	memory := idealmemcontroller.MakeBuilder().
		WithEngine(engine).
		WithNewStorage(c.memCapacity).
		WithLatency(sim.VTimeInCycle(c.memLatency)).
		WithWidth(c.memWidth).
		Build("Memory")

	cacheComp := cache.MakeBuilder().
		WithEngine(engine).
		WithBlockSize(c.blockSize).
		WithByteSize(c.byteSize).
		WithWayAssociativity(c.ways).
		WithLatency(sim.VTimeInCycle(c.latency)).
		WithReplacementPolicyName(c.policy).
		WithNumRRPVBits(c.rrpvBits).
		WithHitPriority(c.hitPriority).
		WithBTP(c.btp).
		WithConstituencySize(c.constituency).
		WithWriteBack(!c.noWriteBack).
		WithSeed(c.seed).
		WithNumRequesters(c.requesters).
		Build("Cache")
	mem.Connect(cacheComp.BottomPort(), memory.TopPort())

	sys := &system{
		sim:    s,
		cache:  cacheComp,
		memory: memory,
		avg:    tracing.NewAverageTimeTracer(engine, tracing.KindIs("req_in")),
	}

	for i := 0; i < c.requesters; i++ {
		start := uint64(i) * c.addrRange
		agent := memaccessagent.MakeBuilder().
			WithEngine(engine).
			WithAddressRange(start, start+c.addrRange).
			WithAccessSize(c.accessSize).
			WithReadLeft(c.accesses).
			WithWriteLeft(c.accesses).
			WithSeed(c.seed + uint64(i) + 1).
			Build(fmt.Sprintf("Agent[%d]", i))
		mem.Connect(agent.MemPort(), cacheComp.TopPort(i))

		s.RegisterComponent(agent)
		sys.agents = append(sys.agents, agent)
	}

	s.RegisterComponent(cacheComp)
	s.RegisterComponent(memory)
	s.RegisterStats(cacheComp.Stats().Group)

	tracing.CollectTrace(cacheComp, s.GetVisTracer())
	tracing.CollectTrace(cacheComp, sys.avg)

	return sys
}

func attachLoggers(c runConfig, sys *system) {
	engine := sys.sim.GetEngine()
	logger := log.New(os.Stderr, "", 0)

	if c.traceLog {
		tracing.CollectTrace(sys.cache,
			tracing.NewLogTracer(engine, logger, nil))
	}

	if c.logEvents {
		engine.AcceptHook(sim.NewEventLogger(logger))
	}
}

func attachMonitor(c runConfig, sys *system) *monitoring.ProgressBar {
	monitor := sys.sim.GetMonitor()
	if monitor == nil {
		return nil
	}

	total := uint64(2 * c.accesses * c.requesters)
	bar := monitor.CreateProgressBar("Accesses", total)
	tracing.CollectTrace(sys.cache, monitoring.NewProgressTracer(bar, "req_in"))

	if c.openMonitor {
		if err := browser.OpenURL(sys.sim.MonitorURL()); err != nil {
			log.Printf("cannot open the monitor: %v", err)
		}
	}

	return bar
}

func recordConfig(c runConfig, sys *system) {
	s := sys.sim
	s.RecordExecInfo("Policy", c.policy)
	s.RecordExecInfo("Block Size", strconv.FormatUint(sys.cache.BlockSize(), 10))
	s.RecordExecInfo("Cache Size", strconv.FormatUint(c.byteSize, 10))
	s.RecordExecInfo("Sets", strconv.Itoa(sys.cache.NumSets()))
	s.RecordExecInfo("Ways", strconv.Itoa(sys.cache.NumWays()))
	s.RecordExecInfo("Requesters", strconv.Itoa(c.requesters))
	s.RecordExecInfo("Seed", strconv.FormatUint(c.seed, 10))
}

func run(c runConfig, out io.Writer) error {
	if err := c.validate(); err != nil {
		return err
	}

	s, err := buildSimulation(c)
	if err != nil {
		return err
	}

	sys := buildSystem(c, s)
	attachLoggers(c, sys)
	bar := attachMonitor(c, sys)
	recordConfig(c, sys)

	for _, agent := range sys.agents {
		agent.Start()
	}

	runErr := s.GetEngine().Run()

	if bar != nil {
		s.GetMonitor().CompleteProgressBar(bar)
	}

	if runErr == nil {
		runErr = report(sys, sim.Freq(c.freqGHz)*sim.GHz, out)
	}

	return errors.Join(runErr, s.Terminate())
}

func report(sys *system, freq sim.Freq, out io.Writer) error {
	if err := sys.cache.Stats().Group.Dump(out); err != nil {
		return err
	}

	fmt.Fprintf(out, "Cache.avg_access_latency\t%.4g\tcycle\n",
		sys.avg.AverageTime())
	now := sys.sim.GetEngine().CurrentTime()
	fmt.Fprintf(out, "Simulated cycles\t%d\n", now)
	fmt.Fprintf(out, "Simulated time\t%.6g\ts\n", freq.Seconds(now))

	var mismatches []string
	for _, agent := range sys.agents {
		if !agent.Done() {
			return fmt.Errorf("%s did not finish", agent.Name())
		}

		mismatches = append(mismatches, agent.Mismatches...)
	}

	if len(mismatches) > 0 {
		return fmt.Errorf("%w: %d reads, first: %s",
			ErrDataMismatch, len(mismatches), mismatches[0])
	}

	return nil
}
