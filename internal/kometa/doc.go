// Package kometa renders classification results as Kometa overlay and
// collection files.
//
// Every category produces a numbered overlay file and a collection file.
// Ten further overlays carry Plex search filters for recently added media;
// Kometa resolves those against the library itself, so they do not depend on
// the classification at all.
//
// Template blocks come from a YAML file whose key order is preserved in the
// output. Rendering works on yaml.v3 nodes for that reason.
package kometa
