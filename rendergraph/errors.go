package rendergraph

import (
	"fmt"
	"strings"
)

// RedundantResourceError means a resource name is already registered.
type RedundantResourceError struct {
	Name string
}

func (e RedundantResourceError) Error() string {
	return fmt.Sprintf("resource %q already exists", e.Name)
}

// RedundantPassError means a pass name is already registered.
type RedundantPassError struct {
	Name string
}

func (e RedundantPassError) Error() string {
	return fmt.Sprintf("pass %q already exists", e.Name)
}

// NonExistentResourceError means an Existing(name) reference, or a lookup by
// name, did not resolve to a resource of the expected kind.
type NonExistentResourceError struct {
	Name string
	Kind ResourceKind
}

func (e NonExistentResourceError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Kind, e.Name)
}

// NonExistentPassError means a lookup by pass name failed.
type NonExistentPassError struct {
	Name string
}

func (e NonExistentPassError) Error() string {
	return fmt.Sprintf("pass %q does not exist", e.Name)
}

// CyclicDependencyError means the passes cannot be ordered. Path lists one
// cycle in execution direction, ending with its first pass again.
type CyclicDependencyError struct {
	Path []string
}

func (e CyclicDependencyError) Error() string {
	if len(e.Path) == 0 {
		return "cyclic pass dependency"
	}
	return "cyclic pass dependency: " + strings.Join(e.Path, " -> ")
}

// NotCompiledError means Execute was called before any successful Compile.
type NotCompiledError struct{}

func (NotCompiledError) Error() string {
	return "render graph has not been compiled"
}

// PassFailedError wraps an error returned by a pass callback.
type PassFailedError struct {
	Pass string
	Err  error
}

func (e PassFailedError) Error() string {
	return fmt.Sprintf("pass %q failed: %v", e.Pass, e.Err)
}

func (e PassFailedError) Unwrap() error {
	return e.Err
}
