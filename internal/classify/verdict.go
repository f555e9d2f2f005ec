package classify

import "tssk/internal/catalog"

// Kind tags the outcome of evaluating one series.
type Kind int

const (
	// KindNone means the series is not a candidate.
	KindNone Kind = iota
	KindMatched
	KindSkipped
)

func (k Kind) String() string {
	switch k {
	case KindMatched:
		return "matched"
	case KindSkipped:
		return "skipped"
	default:
		return "none"
	}
}

// SkipReason explains why a candidate was demoted.
type SkipReason string

const (
	SkipUnmonitored SkipReason = "unmonitored"
	SkipNewShow     SkipReason = "new_show"
)

// Verdict is the per-series result of a classifier.
type Verdict struct {
	Kind   Kind
	Match  catalog.ShowMatch
	Reason SkipReason
}

func matched(m catalog.ShowMatch) Verdict {
	return Verdict{Kind: KindMatched, Match: m}
}

func skipped(m catalog.ShowMatch, reason SkipReason) Verdict {
	return Verdict{Kind: KindSkipped, Match: m, Reason: reason}
}

// Outcome holds a classifier's matched and skipped lists.
type Outcome struct {
	Matched []catalog.ShowMatch
	Skipped []catalog.ShowMatch
}

// Collect splits verdicts into an Outcome, preserving order.
func Collect(verdicts []Verdict) Outcome {
	var out Outcome
	for _, v := range verdicts {
		switch v.Kind {
		case KindMatched:
			out.Matched = append(out.Matched, v.Match)
		case KindSkipped:
			out.Skipped = append(out.Skipped, v.Match)
		}
	}
	return out
}

// Merge appends other's lists to o.
func (o Outcome) Merge(other Outcome) Outcome {
	o.Matched = append(o.Matched, other.Matched...)
	o.Skipped = append(o.Skipped, other.Skipped...)
	return o
}
