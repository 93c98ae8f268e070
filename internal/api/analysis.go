package api

import (
	"context"

	"github.com/sanghyxuk/shieldhub-cli/models"
)

// StartAnalysisResponse is returned by POST /api/analysis/start.
type StartAnalysisResponse struct {
	AnalysisID string `json:"analysisId"`
}

// AnalysisStatusResponse is returned by GET /api/analysis/status/{id}.
// Result is present only once Status reaches COMPLETED.
type AnalysisStatusResponse struct {
	Status models.AnalysisStatus `json:"status"`
	Result *models.ScanResult    `json:"result,omitempty"`
}

// StartAnalysis submits url for a vulnerability scan and returns the job
// identifier the status endpoint is polled with.
func (c *Client) StartAnalysis(ctx context.Context, url string) (string, error) {
	var out StartAnalysisResponse
	err := c.postJSON(ctx, "/api/analysis/start", map[string]string{"url": url}, &out, true)
	if err != nil {
		return "", err
	}
	if out.AnalysisID == "" {
		return "", &RequestError{Message: "server returned no analysis id"}
	}
	return out.AnalysisID, nil
}

// GetAnalysisStatus reads the current lifecycle state of a job. The client
// never writes status; all transitions happen server-side.
func (c *Client) GetAnalysisStatus(ctx context.Context, id string) (*AnalysisStatusResponse, error) {
	var out AnalysisStatusResponse
	if err := c.getJSON(ctx, "/api/analysis/status/"+id, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}
