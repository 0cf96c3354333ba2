package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/Git-i/gpu-gems/rendergraph"
)

// Op is the kind of a recorded command.
type Op string

const (
	OpBeginPass Op = "begin"
	OpRead      Op = "read"
	OpWrite     Op = "write"
	OpClear     Op = "clear"
	OpEndPass   Op = "end"
)

// Command is one recorded entry.
type Command struct {
	Frame int
	Pass  string
	Op    Op
	// Binding is zero for begin and end.
	Binding rendergraph.Binding
}

func (c Command) String() string {
	switch c.Op {
	case OpBeginPass, OpEndPass:
		return fmt.Sprintf("frame %d %s %s", c.Frame, c.Op, c.Pass)
	default:
		return fmt.Sprintf("frame %d %s   %-5s %s", c.Frame, c.Pass, c.Op, c.Binding)
	}
}

// Recorder collects commands across frames. It is not safe for concurrent
// use, matching the single-threaded executor.
type Recorder struct {
	frame    int
	commands []Command
}

// NewRecorder returns an empty recorder positioned at frame 0.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// BeginFrame sets the frame number stamped on subsequent commands.
func (r *Recorder) BeginFrame(frame int) {
	r.frame = frame
}

// Record appends one command to the current frame.
func (r *Recorder) Record(pass string, op Op, b rendergraph.Binding) {
	r.commands = append(r.commands, Command{Frame: r.frame, Pass: pass, Op: op, Binding: b})
}

// Commands returns a copy of everything recorded so far.
func (r *Recorder) Commands() []Command {
	return append([]Command(nil), r.commands...)
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int { return len(r.commands) }

// WriteTo writes one line per command.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, c := range r.commands {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
