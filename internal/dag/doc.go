// Package dag is the ordering layer of the frame graph. It stores a directed
// graph over densely numbered nodes (one node per render pass, numbered in
// declaration order) and turns it into a deterministic execution order.
//
// Nodes are plain integers rather than pointers so that the graph stays valid
// when the owner reallocates its pass storage. Every ordering decision the
// package makes compares node numbers explicitly; nothing depends on map
// iteration order.
package dag
