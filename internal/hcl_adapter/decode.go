package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/Git-i/gpu-gems/internal/config"
)

// decodeExpr evaluates expr, converts the result to want and stores it in
// goVal. It reports false without touching goVal when the attribute was left
// out of the source.
func decodeExpr(ctx context.Context, expr hcl.Expression, attrName string, want cty.Type, goVal any) (bool, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return false, nil
	}
	val, diags := expr.Value(evalContext())
	if diags.HasErrors() {
		return false, fmt.Errorf("evaluating %s: %w", attrName, diags)
	}
	if val.IsNull() {
		return false, nil
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return false, fmt.Errorf("%s at %s: cannot convert %s to %s: %w",
			attrName, expr.Range(), val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	if err := gocty.FromCtyValue(converted, goVal); err != nil {
		return false, fmt.Errorf("%s at %s: %w", attrName, expr.Range(), err)
	}
	return true, nil
}

// decodeSize evaluates a texture size attribute built with absolute() or
// swapchain_relative(). A missing attribute yields nil.
func decodeSize(ctx context.Context, expr hcl.Expression) (*config.Size, error) {
	var sv sizeValue
	ok, err := decodeExpr(ctx, expr, "size", sizeType, &sv)
	if err != nil || !ok {
		return nil, err
	}
	switch sv.Mode {
	case sizeModeAbsolute:
		return &config.Size{Width: sv.Width, Height: sv.Height}, nil
	case sizeModeRelative:
		return &config.Size{Relative: true, ScaleX: sv.ScaleX, ScaleY: sv.ScaleY}, nil
	default:
		return nil, fmt.Errorf("size at %s: unknown mode %q; use absolute() or swapchain_relative()", expr.Range(), sv.Mode)
	}
}
