// Package history records past user actions (encrypt, decrypt, website
// inspections) locally. The list is append-only and always reads newest
// first; a fresh database is simply an empty history.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sanghyxuk/shieldhub-cli/internal/database"
	"github.com/sanghyxuk/shieldhub-cli/internal/events"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

// Store persists history entries and cached scan reports.
type Store struct {
	db  database.DB
	bus *events.Bus
}

// NewStore returns a Store over db, announcing appends on bus.
func NewStore(db database.DB, bus *events.Bus) *Store {
	return &Store{db: db, bus: bus}
}

// Append records entry and publishes events.HistoryUpdated. A missing ID is
// assigned a fresh UUID; a missing date gets today's date.
func (s *Store) Append(ctx context.Context, entry models.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Date == "" {
		entry.Date = time.Now().Format("2006.01.02")
	}
	if _, err := s.db.Insert(ctx, "history_entries", entry); err != nil {
		return fmt.Errorf("appending history entry: %w", err)
	}
	if s.bus != nil {
		s.bus.Publish(events.Event{Type: events.HistoryUpdated, Payload: entry})
	}
	return nil
}

// LoadAll returns every entry, newest first.
func (s *Store) LoadAll(ctx context.Context) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := s.db.Select(ctx, &entries,
		`SELECT id, title, status, date, entry_type FROM history_entries ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return entries, nil
}

// LoadByType returns entries of one type, newest first.
func (s *Store) LoadByType(ctx context.Context, entryType string) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := s.db.Select(ctx, &entries,
		`SELECT id, title, status, date, entry_type FROM history_entries
		 WHERE entry_type = ? ORDER BY seq DESC`, entryType)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return entries, nil
}

// SaveReport caches a completed scan result for offline browsing.
func (s *Store) SaveReport(ctx context.Context, result *models.ScanResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("serialising report: %w", err)
	}
	rec := models.StoredReport{
		URL:       result.URL,
		Payload:   string(payload),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.db.Insert(ctx, "scan_reports", rec); err != nil {
		return fmt.Errorf("caching report: %w", err)
	}
	return nil
}

// LatestReport returns the most recently cached scan result, or nil when
// none has been stored yet.
func (s *Store) LatestReport(ctx context.Context) (*models.ScanResult, error) {
	var rec models.StoredReport
	err := s.db.Get(ctx, &rec,
		`SELECT id, url, payload, created_at FROM scan_reports ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cached report: %w", err)
	}
	var result models.ScanResult
	if err := json.Unmarshal([]byte(rec.Payload), &result); err != nil {
		return nil, fmt.Errorf("parsing cached report: %w", err)
	}
	return &result, nil
}
