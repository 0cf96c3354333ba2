// Package inspector publishes compiled plans and frame reports to a remote
// socket.io dashboard. Nop is used when no endpoint is configured.
package inspector
