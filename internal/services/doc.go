// Package services defines shared utilities consumed by the classification
// pipeline and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp the run correlation ID and current category
//     for logging.
//   - Structured error markers plus the Wrap helper, so the CLI can tell a
//     fatal connectivity failure from a recoverable lookup problem and pick
//     the right exit code.
//
// Use these helpers when wiring new integrations so failure handling stays
// uniform across the Sonarr, TMDB and GitHub clients.
package services
