// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/Git-i/gpu-gems/internal/config"
	"github.com/Git-i/gpu-gems/internal/ctxlog"
)

// translateSwapchain converts the HCL swapchain block into the agnostic model.
func (l *Loader) translateSwapchain(ctx context.Context, s *Swapchain) (*config.Swapchain, error) {
	sc := &config.Swapchain{}
	if _, err := decodeExpr(ctx, s.Width, "width", cty.Number, &sc.Width); err != nil {
		return nil, fmt.Errorf("in swapchain: %w", err)
	}
	if _, err := decodeExpr(ctx, s.Height, "height", cty.Number, &sc.Height); err != nil {
		return nil, fmt.Errorf("in swapchain: %w", err)
	}
	if sc.Width == 0 || sc.Height == 0 {
		return nil, fmt.Errorf("in swapchain: width and height must be at least 1")
	}
	return sc, nil
}

// translateTexture converts the HCL texture block into the agnostic model.
func (l *Loader) translateTexture(ctx context.Context, t *Texture) (*config.Texture, error) {
	out := &config.Texture{Name: t.Name}
	size, err := decodeSize(ctx, t.Size)
	if err != nil {
		return nil, fmt.Errorf("in texture '%s': %w", t.Name, err)
	}
	out.Size = size
	if _, err := decodeExpr(ctx, t.Format, "format", cty.String, &out.Format); err != nil {
		return nil, fmt.Errorf("in texture '%s': %w", t.Name, err)
	}
	if _, err := decodeExpr(ctx, t.External, "external", cty.Bool, &out.External); err != nil {
		return nil, fmt.Errorf("in texture '%s': %w", t.Name, err)
	}
	return out, nil
}

// translateBuffer converts the HCL buffer block into the agnostic model.
func (l *Loader) translateBuffer(ctx context.Context, b *Buffer) (*config.Buffer, error) {
	out := &config.Buffer{Name: b.Name}
	if _, err := decodeExpr(ctx, b.Size, "size", cty.Number, &out.Size); err != nil {
		return nil, fmt.Errorf("in buffer '%s': %w", b.Name, err)
	}
	if _, err := decodeExpr(ctx, b.External, "external", cty.Bool, &out.External); err != nil {
		return nil, fmt.Errorf("in buffer '%s': %w", b.Name, err)
	}
	return out, nil
}

// translatePass converts the HCL pass block and its attachments into the
// agnostic model.
func (l *Loader) translatePass(ctx context.Context, p *Pass) (*config.Pass, error) {
	logger := ctxlog.FromContext(ctx).With("pass", p.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL pass to internal config model.")

	out := &config.Pass{Name: p.Name}
	if _, err := decodeExpr(ctx, p.Handler, "handler", cty.String, &out.Handler); err != nil {
		return nil, fmt.Errorf("in pass '%s': %w", p.Name, err)
	}
	for _, in := range p.Inputs {
		a, err := l.translateAttachment(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("in pass '%s', input '%s': %w", p.Name, in.Name, err)
		}
		out.Inputs = append(out.Inputs, a)
	}
	for _, o := range p.Outputs {
		a, err := l.translateAttachment(ctx, o)
		if err != nil {
			return nil, fmt.Errorf("in pass '%s', output '%s': %w", p.Name, o.Name, err)
		}
		out.Outputs = append(out.Outputs, a)
	}
	return out, nil
}

func (l *Loader) translateAttachment(ctx context.Context, a *AttachmentBody) (*config.Attachment, error) {
	out := &config.Attachment{Kind: a.Kind, Name: a.Name}
	hasSize := isExprDefined(ctx, a.Size, "size")
	hasFormat := isExprDefined(ctx, a.Format, "format")

	switch a.Kind {
	case config.KindImage:
		if !hasSize && !hasFormat {
			return out, nil
		}
		tex, err := l.translateTexture(ctx, &Texture{Name: a.Name, Size: a.Size, Format: a.Format})
		if err != nil {
			return nil, err
		}
		out.Texture = tex
	case config.KindBuffer:
		if hasFormat {
			return nil, fmt.Errorf("buffers have no format")
		}
		if !hasSize {
			return out, nil
		}
		buf, err := l.translateBuffer(ctx, &Buffer{Name: a.Name, Size: a.Size})
		if err != nil {
			return nil, err
		}
		out.Buffer = buf
	default:
		return nil, fmt.Errorf("unknown attachment kind %q; expected %q or %q", a.Kind, config.KindImage, config.KindBuffer)
	}
	return out, nil
}
