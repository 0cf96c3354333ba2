// Package alias assigns physical slots to logical resources from their
// lifetime windows.
//
// A slot may be shared by several requests when their windows are strictly
// disjoint and their compatibility keys are equal. Requests are placed in order
// of window start (ties broken by request order), and each request reuses the
// compatible slot that became free most recently, falling back to a new slot.
// Exclusive requests always receive a slot of their own that nothing else may
// reuse.
package alias
