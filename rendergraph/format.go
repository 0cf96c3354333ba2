package rendergraph

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// formatNames maps WebGPU format names to their gputypes values.
var formatNames = map[string]gputypes.TextureFormat{
	"undefined":            gputypes.TextureFormatUndefined,
	"r8unorm":              gputypes.TextureFormatR8Unorm,
	"rgba8unorm":           gputypes.TextureFormatRGBA8Unorm,
	"bgra8unorm":           gputypes.TextureFormatBGRA8Unorm,
	"depth24plus-stencil8": gputypes.TextureFormatDepth24PlusStencil8,
}

// ParseFormat resolves a WebGPU texture format name such as "rgba8unorm".
// Matching is case-insensitive.
func ParseFormat(name string) (gputypes.TextureFormat, error) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return gputypes.TextureFormatUndefined, fmt.Errorf("unknown texture format %q", name)
	}
	return f, nil
}

// FormatName returns the WebGPU name of a format known to ParseFormat, or a
// numeric placeholder for any other value.
func FormatName(f gputypes.TextureFormat) string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return fmt.Sprintf("format(%v)", f)
}
