// Package updatecheck compares the running build against the latest GitHub
// release. Failures are informational; a run never stops because of them.
package updatecheck
