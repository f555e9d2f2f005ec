// Package sonarr is a small client for the Sonarr v3 API.
//
// It discovers the API root (plain or behind a /sonarr prefix), lists series
// and episodes, and converts them to catalog types. Transient failures are
// retried with exponential backoff; anything still failing is reported as a
// connectivity error, which aborts the run.
package sonarr
