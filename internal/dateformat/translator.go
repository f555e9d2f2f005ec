package dateformat

import (
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tssk/internal/logging"
)

// Render formats a dd/mm/yyyy date with pattern, optionally upper-casing the
// result.
func Render(raw, pattern string, capitalize bool) (string, error) {
	date, err := ParseRaw(raw)
	if err != nil {
		return "", err
	}
	compiled, err := Compile(pattern)
	if err != nil {
		return "", err
	}
	out := compiled.Render(date)
	if capitalize {
		out = cases.Upper(language.BrazilianPortuguese).String(out)
	}
	return out, nil
}

// Translator renders dates for overlay text and never fails: a date or
// pattern it cannot render is logged and returned unformatted.
type Translator struct {
	logger *slog.Logger
}

// NewTranslator returns a Translator that reports fallbacks to logger.
func NewTranslator(logger *slog.Logger) *Translator {
	return &Translator{logger: logging.NewComponentLogger(logger, "dateformat")}
}

// Format renders raw with pattern, falling back to raw on error.
func (t *Translator) Format(raw, pattern string, capitalize bool) string {
	out, err := Render(raw, pattern, capitalize)
	if err != nil {
		logging.WarnWithContext(t.logger, "date format failed; using raw date", "date_format_failed",
			logging.String("raw_date", raw),
			logging.String("pattern", pattern),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check date_format in the overlay templates"),
			logging.String(logging.FieldImpact, "overlay text shows the unformatted date"),
		)
		return raw
	}
	return out
}
