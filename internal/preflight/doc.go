// Package preflight provides readiness checks for the directories and
// services a run depends on.
//
// The run command calls RunAll before fetching anything, so a missing output
// directory or an unreachable Sonarr fails fast without touching existing
// Kometa files. "tssk config validate" runs the same checks and prints them.
package preflight
