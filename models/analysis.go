package models

// AnalysisStatus is the lifecycle state of a server-side analysis job.
// The client only ever reads status; all transitions happen on the server.
type AnalysisStatus string

const (
	AnalysisPending    AnalysisStatus = "PENDING"
	AnalysisInProgress AnalysisStatus = "IN_PROGRESS"
	AnalysisCompleted  AnalysisStatus = "COMPLETED"
	AnalysisFailed     AnalysisStatus = "FAILED"
)

// IsTerminal reports whether no further transition can occur from s.
// Unrecognised values are treated as terminal so a client never polls forever
// on a status it does not understand.
func (s AnalysisStatus) IsTerminal() bool {
	switch s {
	case AnalysisPending, AnalysisInProgress:
		return false
	default:
		return true
	}
}

// Vulnerability is a single finding within a completed scan.
type Vulnerability struct {
	Type       string  `json:"type" yaml:"type"`
	Severity   string  `json:"severity" yaml:"severity"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Location   string  `json:"location" yaml:"location"`
	Pattern    string  `json:"pattern" yaml:"pattern"`
	Details    string  `json:"details" yaml:"details"`
}

// ScanResult is the immutable payload of a completed analysis job.
type ScanResult struct {
	Success            bool            `json:"success" yaml:"success"`
	URL                string          `json:"url" yaml:"url"`
	Vulnerabilities    []Vulnerability `json:"vulnerabilities" yaml:"vulnerabilities"`
	VulnerabilityCount int             `json:"vulnerability_count" yaml:"vulnerability_count"`
}
