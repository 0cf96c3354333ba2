package handlers

import (
	"fmt"
	"slices"

	"github.com/Git-i/gpu-gems/rendergraph"
)

// Handlers holds all the registered pass callbacks by name.
type Handlers struct {
	all map[string]rendergraph.Callback
}

// New creates an empty registry.
func New() *Handlers {
	return &Handlers{
		all: make(map[string]rendergraph.Callback),
	}
}

// NewWithBuiltins creates a registry holding the built-in handlers.
func NewWithBuiltins() *Handlers {
	h := New()
	RegisterBuiltins(h)
	return h
}

// RegisterHandler registers a callback under name. Registering a name twice
// is a programming error.
func (h *Handlers) RegisterHandler(name string, fn rendergraph.Callback) {
	if _, exists := h.all[name]; exists {
		panic(fmt.Sprintf("pass handler with name '%s' already registered", name))
	}
	if fn == nil {
		panic(fmt.Sprintf("pass handler '%s' is nil", name))
	}
	h.all[name] = fn
}

// Get returns the callback registered under name.
func (h *Handlers) Get(name string) (rendergraph.Callback, error) {
	fn, ok := h.all[name]
	if !ok {
		return nil, &UnknownHandlerError{Name: name, Known: h.Names()}
	}
	return fn, nil
}

// Names returns the registered names in sorted order.
func (h *Handlers) Names() []string {
	names := make([]string, 0, len(h.all))
	for name := range h.all {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// UnknownHandlerError means a description names a handler nobody registered.
type UnknownHandlerError struct {
	Name  string
	Known []string
}

func (e *UnknownHandlerError) Error() string {
	return fmt.Sprintf("unknown pass handler '%s' (registered: %v)", e.Name, e.Known)
}
