package handlers

import (
	"fmt"

	"github.com/Git-i/gpu-gems/internal/commands"
	"github.com/Git-i/gpu-gems/internal/ctxlog"
	"github.com/Git-i/gpu-gems/rendergraph"
)

// Names of the built-in handlers.
const (
	Noop  = "noop"
	Trace = "trace"
	Clear = "clear"
)

// RegisterBuiltins adds the built-in handlers to h.
func RegisterBuiltins(h *Handlers) {
	h.RegisterHandler(Noop, noop)
	h.RegisterHandler(Trace, trace)
	h.RegisterHandler(Clear, clearImages)
}

func noop(*rendergraph.RecordContext) error { return nil }

// trace records a read for every input and a write for every output.
func trace(rc *rendergraph.RecordContext) error {
	rec, err := recorder(rc)
	if err != nil {
		return err
	}
	record(rc, rec, nil)
	return nil
}

// clearImages is trace with an extra clear before every image it writes.
func clearImages(rc *rendergraph.RecordContext) error {
	rec, err := recorder(rc)
	if err != nil {
		return err
	}
	record(rc, rec, func(b rendergraph.Binding) {
		if b.Kind == rendergraph.KindImage {
			rec.Record(rc.Pass(), commands.OpClear, b)
		}
	})
	return nil
}

func recorder(rc *rendergraph.RecordContext) (*commands.Recorder, error) {
	rec, ok := rc.Commands().(*commands.Recorder)
	if !ok {
		return nil, fmt.Errorf("pass '%s' needs a *commands.Recorder, got %T", rc.Pass(), rc.Commands())
	}
	return rec, nil
}

func record(rc *rendergraph.RecordContext, rec *commands.Recorder, beforeWrite func(rendergraph.Binding)) {
	logger := ctxlog.FromContext(rc.Context()).With("pass", rc.Pass())
	inputs, outputs := rc.Inputs(), rc.Outputs()
	logger.Debug("Tracing pass.", "inputs", len(inputs), "outputs", len(outputs))

	rec.Record(rc.Pass(), commands.OpBeginPass, rendergraph.Binding{})
	for _, b := range inputs {
		rec.Record(rc.Pass(), commands.OpRead, b)
	}
	for _, b := range outputs {
		if beforeWrite != nil {
			beforeWrite(b)
		}
		rec.Record(rc.Pass(), commands.OpWrite, b)
	}
	rec.Record(rc.Pass(), commands.OpEndPass, rendergraph.Binding{})
}
