// Package report turns a completed ScanResult into user-facing output:
// severity-grouped summaries, styled terminal tables, remediation guidance,
// and downloadable report files.
package report

import (
	"log/slog"

	"github.com/sanghyxuk/shieldhub-cli/models"
)

// Summary partitions a scan result's vulnerabilities into the four severity
// buckets. Unrecognised severities land in none of them and are tallied
// separately in Unknown.
type Summary struct {
	Critical []models.Vulnerability
	High     []models.Vulnerability
	Medium   []models.Vulnerability
	Low      []models.Vulnerability
	Unknown  int
}

// Counts returns the per-bucket sizes in severity order.
func (s Summary) Counts() (critical, high, medium, low int) {
	return len(s.Critical), len(s.High), len(s.Medium), len(s.Low)
}

// Total returns the number of vulnerabilities across the four buckets.
func (s Summary) Total() int {
	return len(s.Critical) + len(s.High) + len(s.Medium) + len(s.Low)
}

// Group buckets result's vulnerabilities by exact severity match.
func Group(result *models.ScanResult) Summary {
	var sum Summary
	for _, v := range result.Vulnerabilities {
		switch models.Severity(v.Severity) {
		case models.SeverityCritical:
			sum.Critical = append(sum.Critical, v)
		case models.SeverityHigh:
			sum.High = append(sum.High, v)
		case models.SeverityMedium:
			sum.Medium = append(sum.Medium, v)
		case models.SeverityLow:
			sum.Low = append(sum.Low, v)
		default:
			sum.Unknown++
			slog.Warn("vulnerability with unrecognised severity excluded from buckets",
				"severity", v.Severity, "type", v.Type)
		}
	}
	return sum
}
