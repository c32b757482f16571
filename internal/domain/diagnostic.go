package domain

// Diagnostic is one finding of the pre-submission validation pass.
// Kode is empty for findings about the selection as a whole.
type Diagnostic struct {
	Severity Severity
	Kode     string
	Message  string
}

// Report is the ordered list of diagnostics returned by validation.
type Report []Diagnostic

// HasFatal reports whether any diagnostic blocks submission.
func (r Report) HasFatal() bool {
	for _, d := range r {
		if d.Severity.Blocking() {
			return true
		}
	}
	return false
}

// BySeverity returns the diagnostics of the given severity, in order.
func (r Report) BySeverity(s Severity) Report {
	var out Report
	for _, d := range r {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}
