package domain

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityFatal   Severity = "fatal"
)

// Blocking reports whether a diagnostic of this severity must stop submission.
func (s Severity) Blocking() bool {
	return s == SeverityFatal
}

type Locale string

const (
	LocaleID Locale = "id"
	LocaleEN Locale = "en"
)

// ValidLocales is the canonical set of accepted locale strings.
var ValidLocales = map[string]bool{
	"id": true, "en": true,
}
