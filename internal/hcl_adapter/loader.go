package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/Git-i/gpu-gems/internal/config"
	"github.com/Git-i/gpu-gems/internal/ctxlog"
	"github.com/Git-i/gpu-gems/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file found under paths and merges them into one
// model. Files are read in path order; files inside a directory are read in
// lexical order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		part, err := l.translateFile(ctx, &root)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", file, err)
		}
		model.Merge(part)
	}

	logger.Debug("HCL loading complete.",
		"textures", len(model.Textures),
		"buffers", len(model.Buffers),
		"passes", len(model.Passes),
	)
	return model, nil
}

func (l *Loader) translateFile(ctx context.Context, root *fileRoot) (*config.Model, error) {
	part := &config.Model{}
	switch len(root.Swapchains) {
	case 0:
	case 1:
		sc, err := l.translateSwapchain(ctx, root.Swapchains[0])
		if err != nil {
			return nil, err
		}
		part.Swapchain = sc
	default:
		return nil, fmt.Errorf("only one swapchain block is allowed per file")
	}
	for _, t := range root.Textures {
		tex, err := l.translateTexture(ctx, t)
		if err != nil {
			return nil, err
		}
		part.Textures = append(part.Textures, tex)
	}
	for _, b := range root.Buffers {
		buf, err := l.translateBuffer(ctx, b)
		if err != nil {
			return nil, err
		}
		part.Buffers = append(part.Buffers, buf)
	}
	for _, p := range root.Passes {
		pass, err := l.translatePass(ctx, p)
		if err != nil {
			return nil, err
		}
		part.Passes = append(part.Passes, pass)
	}
	return part, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) != ".hcl" {
				return nil, fmt.Errorf("%s is not an .hcl file", path)
			}
			add(path)
			continue
		}
		found, err := fsutil.FindFiles(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}
	return allFiles, nil
}
