package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Size modes carried by sizeType values.
const (
	sizeModeAbsolute = "absolute"
	sizeModeRelative = "swapchain_relative"
)

// sizeType is the value returned by the size functions. Both functions fill
// every attribute so the value decodes into one Go struct.
var sizeType = cty.Object(map[string]cty.Type{
	"mode":    cty.String,
	"width":   cty.Number,
	"height":  cty.Number,
	"scale_x": cty.Number,
	"scale_y": cty.Number,
})

// sizeValue is the Go form of a sizeType value.
type sizeValue struct {
	Mode   string  `cty:"mode"`
	Width  uint32  `cty:"width"`
	Height uint32  `cty:"height"`
	ScaleX float32 `cty:"scale_x"`
	ScaleY float32 `cty:"scale_y"`
}

// absoluteFunc implements absolute(width, height).
var absoluteFunc = function.New(&function.Spec{
	Description: "A fixed texture size in pixels.",
	Params: []function.Parameter{
		{Name: "width", Type: cty.Number},
		{Name: "height", Type: cty.Number},
	},
	Type: function.StaticReturnType(sizeType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		for i, a := range args {
			if err := checkPositiveWhole(a); err != nil {
				return cty.NilVal, function.NewArgError(i, err)
			}
		}
		return cty.ObjectVal(map[string]cty.Value{
			"mode":    cty.StringVal(sizeModeAbsolute),
			"width":   args[0],
			"height":  args[1],
			"scale_x": cty.Zero,
			"scale_y": cty.Zero,
		}), nil
	},
})

// swapchainRelativeFunc implements swapchain_relative(scale_x, scale_y).
var swapchainRelativeFunc = function.New(&function.Spec{
	Description: "A texture size scaled from the swapchain extent.",
	Params: []function.Parameter{
		{Name: "scale_x", Type: cty.Number},
		{Name: "scale_y", Type: cty.Number},
	},
	Type: function.StaticReturnType(sizeType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		for i, a := range args {
			if a.LessThanOrEqualTo(cty.Zero).True() {
				return cty.NilVal, function.NewArgErrorf(i, "scale must be greater than zero")
			}
		}
		return cty.ObjectVal(map[string]cty.Value{
			"mode":    cty.StringVal(sizeModeRelative),
			"width":   cty.Zero,
			"height":  cty.Zero,
			"scale_x": args[0],
			"scale_y": args[1],
		}), nil
	},
})

func checkPositiveWhole(v cty.Value) error {
	bf := v.AsBigFloat()
	if !bf.IsInt() {
		return fmt.Errorf("must be a whole number")
	}
	if v.LessThan(cty.NumberIntVal(1)).True() {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

// evalContext returns the context every frame-graph expression is evaluated
// in. Descriptions have no variables, only the size functions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"absolute":           absoluteFunc,
			"swapchain_relative": swapchainRelativeFunc,
		},
	}
}
