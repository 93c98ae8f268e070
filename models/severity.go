package models

// Severity represents the severity of a reported vulnerability.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityUnknown  Severity = "UNKNOWN"
)

// Weight returns a numeric weight for sorting (higher = more severe).
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

// MapSeverity normalises a raw severity string from the analysis service.
// The service emits upper-case values; anything unrecognised maps to UNKNOWN
// so it never lands in one of the four report buckets.
func MapSeverity(raw string) Severity {
	switch raw {
	case "CRITICAL", "critical":
		return SeverityCritical
	case "HIGH", "high":
		return SeverityHigh
	case "MEDIUM", "medium", "MODERATE", "moderate":
		return SeverityMedium
	case "LOW", "low":
		return SeverityLow
	default:
		return SeverityUnknown
	}
}
