// Package config defines the format-agnostic model of a frame-graph
// description, along with the Loader interface implemented by concrete
// formats such as HCL.
//
// The Model is the single source of truth for the app package, which turns
// it into a rendergraph.Graph.
package config
