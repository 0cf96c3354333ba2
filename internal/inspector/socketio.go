package inspector

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/Git-i/gpu-gems/internal/ctxlog"
	"github.com/Git-i/gpu-gems/rendergraph"
)

// DefaultConnectTimeout bounds Dial when Options.ConnectTimeout is zero.
const DefaultConnectTimeout = 15 * time.Second

// Options configures a socket.io inspector connection.
type Options struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// SocketIO publishes to a socket.io server over a websocket transport.
type SocketIO struct {
	io     *socket.Socket
	logger *slog.Logger
}

var _ Publisher = (*SocketIO)(nil)

// parseEndpoint validates the inspector URL and splits it into the manager
// base URL and the engine.io path.
func parseEndpoint(raw string) (base, path string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return "", "", fmt.Errorf("unsupported inspector URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("inspector URL %q has no host", raw)
	}
	path = u.Path
	if path == "" || path == "/" {
		path = "/socket.io/"
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), path, nil
}

// Dial connects to the inspector and waits until the namespace is joined.
func Dial(ctx context.Context, o Options) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("component", "inspector", "url", o.URL)
	baseURL, path, err := parseEndpoint(o.URL)
	if err != nil {
		return nil, err
	}
	timeout := o.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	opts := socket.DefaultOptions()
	opts.SetPath(path)
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	namespace := o.Namespace
	if namespace == "" {
		namespace = "/"
	}
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Inspector connected.", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connectChan <- err:
		default:
		}
	})

	logger.Debug("Connecting to inspector.", "namespace", namespace)
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketIO{io: io, logger: logger}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// PublishPlan emits EventPlan with the plan's JSON form.
func (s *SocketIO) PublishPlan(_ context.Context, plan *rendergraph.Plan) error {
	payload, err := planPayload(plan)
	if err != nil {
		return err
	}
	return s.emit(EventPlan, payload)
}

// PublishFrame emits EventFrame with the frame summary.
func (s *SocketIO) PublishFrame(_ context.Context, report FrameReport) error {
	return s.emit(EventFrame, framePayload(report))
}

func (s *SocketIO) emit(event string, payload map[string]any) error {
	if !s.io.Connected() {
		return fmt.Errorf("inspector is not connected; dropping %s", event)
	}
	s.logger.Debug("Emitting event", "event", event)
	s.io.Emit(event, payload)
	return nil
}

// Close disconnects from the inspector.
func (s *SocketIO) Close() error {
	s.logger.Debug("Closing inspector connection.", "sid", s.io.Id())
	s.io.Disconnect()
	return nil
}
