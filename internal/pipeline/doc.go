// Package pipeline runs every registered sample through hit selection,
// region extraction, and translation validation on a pool of workers.
//
// Samples share only read-only inputs (registry, header index), so workers
// need no coordination beyond collecting outcomes. A failing sample never
// stops the others; only cancellation of the context does.
package pipeline
