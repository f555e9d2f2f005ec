// Package main hosts the tssk CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the slog logger,
// and hands off to the internal packages: `run` fetches the Sonarr library,
// classifies every series and writes the Kometa files, while the remaining
// commands expose the date formatter, the category/file mapping and config
// scaffolding.
//
// Keep this package lean: new behaviour belongs in internal packages first
// and is surfaced here through commands or flags.
package main
