// Package config loads, normalizes, and validates tssk configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SONARR_URL, SONARR_API_KEY, TMDB_API_KEY and the DOCKER/PUID/PGID trio used
// by container deployments.
//
// Always obtain settings through this package so downstream code receives
// sanitized URLs, resolved window spans and clear validation errors.
package config
