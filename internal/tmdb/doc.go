// Package tmdb looks up series status on The Movie Database.
//
// Sonarr only knows "ended"; TMDB distinguishes a show that wrapped up from
// one that was cancelled. LookupStatus maps a TVDB id to a TMDB show and
// returns its status string.
package tmdb
