package api

import (
	"context"
	"fmt"

	"github.com/sanghyxuk/shieldhub-cli/models"
)

// Inspect runs the synchronous website safety check.
func (c *Client) Inspect(ctx context.Context, url string) (*models.InspectionResult, error) {
	var out models.InspectionResult
	err := c.postJSON(ctx, "/api/website/inspect", map[string]string{"url": url}, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// InspectionHistory lists the server-side inspection records, newest first.
func (c *Client) InspectionHistory(ctx context.Context) ([]models.InspectionRecord, error) {
	var out []models.InspectionRecord
	if err := c.getJSON(ctx, "/api/website/history", &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// InspectionResult fetches a single past inspection by id.
func (c *Client) InspectionResult(ctx context.Context, id int64) (*models.InspectionResult, error) {
	var out models.InspectionResult
	if err := c.getJSON(ctx, fmt.Sprintf("/api/website/inspection/%d", id), &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInspection removes a record from the server-side history.
func (c *Client) DeleteInspection(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, "DELETE", fmt.Sprintf("/api/website/history/%d", id), nil, nil, true)
}
