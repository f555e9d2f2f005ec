// Package pipeline gathers a catalog snapshot from the backend and runs the
// classifiers in priority order.
//
// Fetch retrieves series and their episodes with bounded concurrency and
// reassembles them in backend order, so classification never depends on
// request timing. Orchestrator.Classify threads an explicit Claims value
// through each stage: once a series is reported in a category, later
// categories drop it.
package pipeline
