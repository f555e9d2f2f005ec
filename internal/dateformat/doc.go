// Package dateformat renders calendar dates with the small pattern language
// used in overlay templates.
//
// Patterns are built from the tokens mmmm, mmm, mm, m (month), dddd, ddd, dd,
// d (weekday name or day of month) and yyyy, yyy, yy, y (year). Everything
// else is copied through literally. Tokens are claimed longest first so that,
// for example, "yyyy" is never read as two "yy" tokens. Abbreviated weekdays
// are rendered with Portuguese three-letter codes.
package dateformat
