package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/sanghyxuk/shieldhub-cli/models"
)

// FileName returns the download name for a report captured at now,
// e.g. "scan-report-1735689600000.json".
func FileName(now time.Time) string {
	return fmt.Sprintf("scan-report-%d.json", now.UnixMilli())
}

// WriteJSON serialises result verbatim; parsing the output back yields a
// value deep-equal to the original.
func WriteJSON(w io.Writer, result *models.ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteYAML serialises result as YAML for `--output yaml`.
func WriteYAML(w io.Writer, result *models.ScanResult) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
