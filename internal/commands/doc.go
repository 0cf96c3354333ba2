// Package commands is a headless stand-in for a GPU command buffer. Pass
// handlers record what they would have submitted, and the CLI prints the
// resulting log.
package commands
