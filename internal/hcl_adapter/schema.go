package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Swapchains []*Swapchain `hcl:"swapchain,block"`
	Textures   []*Texture   `hcl:"texture,block"`
	Buffers    []*Buffer    `hcl:"buffer,block"`
	Passes     []*Pass      `hcl:"pass,block"`
}

// Swapchain is the HCL schema for the `swapchain` block.
type Swapchain struct {
	Width  hcl.Expression `hcl:"width"`
	Height hcl.Expression `hcl:"height"`
}

// Texture is the HCL schema for a `texture` block.
type Texture struct {
	Name     string         `hcl:"name,label"`
	Size     hcl.Expression `hcl:"size,optional"`
	Format   hcl.Expression `hcl:"format,optional"`
	External hcl.Expression `hcl:"external,optional"`
}

// Buffer is the HCL schema for a `buffer` block.
type Buffer struct {
	Name     string         `hcl:"name,label"`
	Size     hcl.Expression `hcl:"size"`
	External hcl.Expression `hcl:"external,optional"`
}

// Pass is the HCL schema for a `pass` block.
type Pass struct {
	Name    string            `hcl:"name,label"`
	Handler hcl.Expression    `hcl:"handler,optional"`
	Inputs  []*AttachmentBody `hcl:"input,block"`
	Outputs []*AttachmentBody `hcl:"output,block"`
}

// AttachmentBody is the HCL schema for `input` and `output` blocks. The first
// label is the kind ("image" or "buffer"), the second the resource name. An
// empty body references an existing resource; a body with any attribute
// creates it.
type AttachmentBody struct {
	Kind   string         `hcl:"kind,label"`
	Name   string         `hcl:"name,label"`
	Size   hcl.Expression `hcl:"size,optional"`
	Format hcl.Expression `hcl:"format,optional"`
}
