package app

import (
	"context"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/Git-i/gpu-gems/internal/config"
	"github.com/Git-i/gpu-gems/internal/ctxlog"
	"github.com/Git-i/gpu-gems/internal/handlers"
	"github.com/Git-i/gpu-gems/rendergraph"
)

// DefaultHandler records passes that do not name a handler.
const DefaultHandler = handlers.Trace

// BuildOptions adjusts how a model becomes a graph.
type BuildOptions struct {
	// SwapchainWidth and SwapchainHeight override the model's swapchain when
	// both are non-zero.
	SwapchainWidth  uint32
	SwapchainHeight uint32
}

// BuildGraph declares every resource and pass of the model on a new graph.
// Standalone resources are declared first, then passes in model order, each
// pass's inputs before its outputs.
func BuildGraph(ctx context.Context, model *config.Model, h *handlers.Handlers, device gpucontext.DeviceProvider, opts BuildOptions) (*rendergraph.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	width, height := uint32(rendergraph.DefaultSwapchainWidth), uint32(rendergraph.DefaultSwapchainHeight)
	if model.Swapchain != nil {
		width, height = model.Swapchain.Width, model.Swapchain.Height
	}
	if opts.SwapchainWidth > 0 && opts.SwapchainHeight > 0 {
		width, height = opts.SwapchainWidth, opts.SwapchainHeight
	}
	logger.Debug("Building render graph from config model.", "swapchain_width", width, "swapchain_height", height)

	g := rendergraph.New(device, rendergraph.WithSwapchainExtent(width, height))

	for _, t := range model.Textures {
		info, err := textureInfo(t, device)
		if err != nil {
			return nil, fmt.Errorf("texture '%s': %w", t.Name, err)
		}
		if t.External {
			err = g.ImportTexture(info, nil)
		} else {
			err = g.CreateTexture(info)
		}
		if err != nil {
			return nil, fmt.Errorf("texture '%s': %w", t.Name, err)
		}
	}
	for _, b := range model.Buffers {
		info := rendergraph.BufferInfo{Name: b.Name, Size: b.Size}
		var err error
		if b.External {
			err = g.ImportBuffer(info, nil)
		} else {
			err = g.CreateBuffer(info)
		}
		if err != nil {
			return nil, fmt.Errorf("buffer '%s': %w", b.Name, err)
		}
	}

	for _, p := range model.Passes {
		if err := declarePass(g, p, h, device); err != nil {
			return nil, fmt.Errorf("pass '%s': %w", p.Name, err)
		}
	}
	logger.Debug("Render graph declared.", "resources", len(g.Resources()), "passes", len(g.Passes()))
	return g, nil
}

func declarePass(g *rendergraph.Graph, p *config.Pass, h *handlers.Handlers, device gpucontext.DeviceProvider) error {
	name := p.Handler
	if name == "" {
		name = DefaultHandler
	}
	fn, err := h.Get(name)
	if err != nil {
		return err
	}

	b, err := g.AddPass(p.Name)
	if err != nil {
		return err
	}
	b.SetCallback(fn)

	for _, a := range p.Inputs {
		kind, info, err := attachmentInfo(a, device)
		if err != nil {
			return fmt.Errorf("input '%s': %w", a.Name, err)
		}
		if err := b.Input(kind, info); err != nil {
			return fmt.Errorf("input '%s': %w", a.Name, err)
		}
	}
	for _, a := range p.Outputs {
		kind, info, err := attachmentInfo(a, device)
		if err != nil {
			return fmt.Errorf("output '%s': %w", a.Name, err)
		}
		if err := b.Output(kind, info); err != nil {
			return fmt.Errorf("output '%s': %w", a.Name, err)
		}
	}
	return nil
}

func attachmentInfo(a *config.Attachment, device gpucontext.DeviceProvider) (rendergraph.ResourceKind, rendergraph.AttachmentInfo, error) {
	switch a.Kind {
	case config.KindImage:
		if a.Texture == nil {
			return rendergraph.KindImage, rendergraph.Existing(a.Name), nil
		}
		info, err := textureInfo(a.Texture, device)
		if err != nil {
			return 0, rendergraph.AttachmentInfo{}, err
		}
		return rendergraph.KindImage, rendergraph.NewTexture(info), nil
	case config.KindBuffer:
		if a.Buffer == nil {
			return rendergraph.KindBuffer, rendergraph.Existing(a.Name), nil
		}
		return rendergraph.KindBuffer, rendergraph.NewBuffer(rendergraph.BufferInfo{Name: a.Name, Size: a.Buffer.Size}), nil
	default:
		return 0, rendergraph.AttachmentInfo{}, fmt.Errorf("unknown attachment kind %q", a.Kind)
	}
}

func textureInfo(t *config.Texture, device gpucontext.DeviceProvider) (rendergraph.TextureInfo, error) {
	info := rendergraph.DefaultTextureInfo(t.Name)
	if t.Size != nil {
		if t.Size.Relative {
			info.Size = rendergraph.SwapchainRelative(t.Size.ScaleX, t.Size.ScaleY)
		} else {
			info.Size = rendergraph.Absolute(t.Size.Width, t.Size.Height)
		}
	}
	switch {
	case t.Format != "":
		f, err := rendergraph.ParseFormat(t.Format)
		if err != nil {
			return rendergraph.TextureInfo{}, err
		}
		info.Format = f
	case t.External && device != nil:
		info.Format = device.SurfaceFormat()
	default:
		info.Format = gputypes.TextureFormatUndefined
	}
	return info, nil
}
