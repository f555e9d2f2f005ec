// Package catalog holds the read-only snapshot of series and episode metadata
// that a single classification run works from, plus the ShowMatch records and
// Category identifiers the run produces.
//
// Values in this package are plain data. They are populated by the Sonarr
// client, consumed by the classifiers, and rendered by the Kometa emitter; none
// of those layers mutate a Snapshot once it has been assembled.
package catalog
