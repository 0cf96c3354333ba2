// Package handlers maps the handler names used in frame-graph descriptions
// to pass callbacks.
package handlers
