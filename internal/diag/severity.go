package diag

// Severity ranks a diagnostic. Box operations only produce warnings (type
// mismatches) and errors (raised kinds); script parsing produces errors.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning marks an advisory mismatch; WarnAsError may escalate it.
	SevWarning
	// SevError marks a raised error kind or a syntax error.
	SevError
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
