package inspector

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Git-i/gpu-gems/rendergraph"
)

// Event names emitted to the inspector.
const (
	EventPlan  = "framegraph:plan"
	EventFrame = "framegraph:frame"
)

// Publisher receives what the application compiles and executes.
type Publisher interface {
	PublishPlan(ctx context.Context, plan *rendergraph.Plan) error
	PublishFrame(ctx context.Context, report FrameReport) error
	Close() error
}

// FrameReport summarizes one executed frame.
type FrameReport struct {
	Frame    int
	Passes   []string
	Commands int
	Duration time.Duration
	// Err is the execution error, if any.
	Err error
}

// Nop discards everything.
type Nop struct{}

func (Nop) PublishPlan(context.Context, *rendergraph.Plan) error { return nil }
func (Nop) PublishFrame(context.Context, FrameReport) error      { return nil }
func (Nop) Close() error                                         { return nil }

// planPayload turns the plan's JSON encoding into a generic map so the
// socket.io encoder sends it as an object rather than a byte string.
func planPayload(plan *rendergraph.Plan) (map[string]any, error) {
	raw, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	return payload, nil
}

func framePayload(r FrameReport) map[string]any {
	payload := map[string]any{
		"frame":       r.Frame,
		"passes":      append([]string{}, r.Passes...),
		"commands":    r.Commands,
		"duration_us": r.Duration.Microseconds(),
	}
	if r.Err != nil {
		payload["error"] = r.Err.Error()
	}
	return payload
}
