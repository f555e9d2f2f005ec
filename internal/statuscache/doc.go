// Package statuscache keeps TMDB status lookups in a local SQLite database
// so repeated runs do not re-query every ended series.
package statuscache
