package datarecording

import (
	"os"
	"strings"
	"time"
)

const execInfoTable = "exec_info"

type execInfo struct {
	Property string
	Value    string
}

// ExecRecorder records how the program was run: the command line, the
// configuration and the wall-clock start and end times.
type ExecRecorder struct {
	recorder DataRecorder
	entries  []execInfo
}

// NewExecRecorder creates an ExecRecorder that writes into the recorder.
func NewExecRecorder(recorder DataRecorder) *ExecRecorder {
	recorder.CreateTable(execInfoTable, execInfo{})

	return &ExecRecorder{recorder: recorder}
}

// Start logs the current execution.
func (e *ExecRecorder) Start() {
	e.Record("Start Time", timestamp())
	e.Record("Command", strings.Join(os.Args, " "))

	if cwd, err := os.Getwd(); err == nil {
		e.Record("Working Directory", cwd)
	}
}

// Record adds a property of the execution.
func (e *ExecRecorder) Record(property, value string) {
	e.entries = append(e.entries, execInfo{Property: property, Value: value})
}

// End writes the execution info along with the end time.
func (e *ExecRecorder) End() error {
	e.Record("End Time", timestamp())

	for _, entry := range e.entries {
		e.recorder.InsertData(execInfoTable, entry)
	}

	e.entries = nil

	return e.recorder.Flush()
}

func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05.000000000")
}
