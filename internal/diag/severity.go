package diag

// Severity ranks how serious a diagnostic is. Only SevError makes a
// compilation fail.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String returns the lowercase form used in rendered diagnostics.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
