// Package classify decides which lifecycle category a series belongs to.
//
// Each classifier is pure: it reads a catalog.Snapshot and a Window and
// returns an Outcome of matched and skipped ShowMatch records in snapshot
// order. Classifiers know nothing about each other; exclusivity between
// categories is enforced later by the pipeline package.
//
// The episode-driven classifiers are rows in a rule table that differ only
// in window direction, which statuses they accept, how they pick the
// relevant episode, and what they require of it. Per series the table
// yields a tagged Verdict so a demotion keeps its reason.
package classify
