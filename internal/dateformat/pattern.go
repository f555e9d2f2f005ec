package dateformat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidPattern reports a pattern that cannot be rendered.
	ErrInvalidPattern = errors.New("invalid date pattern")
	// ErrInvalidDate reports a raw date that is not dd/mm/yyyy.
	ErrInvalidDate = errors.New("invalid date")
)

// RawLayout is the layout of the raw dates accepted by Format.
const RawLayout = "02/01/2006"

type token struct {
	text   string
	render func(time.Time) string
}

var weekdayCodes = map[time.Weekday]string{
	time.Monday:    "SEG",
	time.Tuesday:   "TER",
	time.Wednesday: "QUA",
	time.Thursday:  "QUI",
	time.Friday:    "SEX",
	time.Saturday:  "SAB",
	time.Sunday:    "DOM",
}

// Longest first; order within a length is irrelevant because tokens of equal
// length never overlap.
var tokens = []token{
	{text: "mmmm", render: func(t time.Time) string { return t.Month().String() }},
	{text: "dddd", render: func(t time.Time) string { return t.Weekday().String() }},
	{text: "yyyy", render: func(t time.Time) string { return t.Format("2006") }},
	{text: "mmm", render: func(t time.Time) string { return t.Month().String()[:3] }},
	{text: "ddd", render: func(t time.Time) string { return weekdayCodes[t.Weekday()] }},
	{text: "yyy", render: func(t time.Time) string { return t.Format("2006") }},
	{text: "mm", render: func(t time.Time) string { return t.Format("01") }},
	{text: "dd", render: func(t time.Time) string { return t.Format("02") }},
	{text: "yy", render: func(t time.Time) string { return t.Format("06") }},
	{text: "m", render: func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{text: "d", render: func(t time.Time) string { return strconv.Itoa(t.Day()) }},
	{text: "y", render: func(t time.Time) string { return t.Format("06") }},
}

// segment is either literal text or a claimed token.
type segment struct {
	literal string
	tok     *token
}

// Pattern is a compiled date pattern.
type Pattern struct {
	source   string
	segments []segment
}

// Compile claims token spans in source, longest tokens first. A claimed span
// is never reconsidered, so shorter tokens only match inside literal text.
func Compile(source string) (*Pattern, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	segments := []segment{{literal: source}}
	for i := range tokens {
		tok := &tokens[i]
		next := make([]segment, 0, len(segments))
		for _, seg := range segments {
			if seg.tok != nil || !strings.Contains(seg.literal, tok.text) {
				next = append(next, seg)
				continue
			}
			parts := strings.Split(seg.literal, tok.text)
			for j, part := range parts {
				if j > 0 {
					next = append(next, segment{tok: tok})
				}
				if part != "" {
					next = append(next, segment{literal: part})
				}
			}
		}
		segments = next
	}
	return &Pattern{source: source, segments: segments}, nil
}

// Render formats the date. Only the calendar fields of date are used.
func (p *Pattern) Render(date time.Time) string {
	var b strings.Builder
	for _, seg := range p.segments {
		if seg.tok != nil {
			b.WriteString(seg.tok.render(date))
			continue
		}
		b.WriteString(seg.literal)
	}
	return b.String()
}

// Tokens lists the claimed tokens in pattern order.
func (p *Pattern) Tokens() []string {
	var out []string
	for _, seg := range p.segments {
		if seg.tok != nil {
			out = append(out, seg.tok.text)
		}
	}
	return out
}

func (p *Pattern) String() string {
	return p.source
}

// ParseRaw parses a dd/mm/yyyy date.
func ParseRaw(raw string) (time.Time, error) {
	parsed, err := time.Parse(RawLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidDate, raw, err)
	}
	return parsed, nil
}
