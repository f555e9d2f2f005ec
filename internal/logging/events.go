package logging

import "log/slog"

const (
	defaultErrorHint = "check logs for details"
	defaultImpact    = "run continued with a fallback"
)

// withEventFields fills in event_type and error_hint, plus impact when
// requireImpact is set, unless the caller already supplied them.
func withEventFields(eventType string, requireImpact bool, attrs []Attr) []Attr {
	if !HasAttrKey(attrs, FieldEventType) {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	if !HasAttrKey(attrs, FieldErrorHint) {
		attrs = append(attrs, String(FieldErrorHint, defaultErrorHint))
	}
	if requireImpact && !HasAttrKey(attrs, FieldImpact) {
		attrs = append(attrs, String(FieldImpact, defaultImpact))
	}
	return attrs
}

// WarnWithContext logs a recoverable problem. Every warning carries
// event_type, error_hint and impact so the log states what happened, what it
// cost and what to do about it.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	logger.Warn(msg, Args(withEventFields(eventType, true, attrs)...)...)
}

// ErrorWithContext logs a fatal problem with event_type and error_hint.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	logger.Error(msg, Args(withEventFields(eventType, false, attrs)...)...)
}
