package history

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sanghyxuk/shieldhub-cli/internal/config"
	"github.com/sanghyxuk/shieldhub-cli/internal/database"
	"github.com/sanghyxuk/shieldhub-cli/internal/events"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

func newTestStore(t *testing.T, bus *events.Bus) *Store {
	t.Helper()
	db, err := database.New(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "history.db"),
	})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return NewStore(db, bus)
}

func TestAppendThenLoadAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	first := models.HistoryEntry{ID: "e1", Title: "doc.pdf", Status: "completed", Date: "2026.08.01", Type: models.HistoryTypeEncrypt}
	second := models.HistoryEntry{ID: "e2", Title: "https://example.com", Status: "safe", Date: "2026.08.02", Type: models.HistoryTypeWebsite}
	for _, e := range []models.HistoryEntry{first, second} {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	want := []models.HistoryEntry{second, first}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected newest first, got %+v", got)
	}
}

func TestAppendFillsDefaults(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	if err := store.Append(ctx, models.HistoryEntry{Title: "photo.jpg", Status: "completed", Type: models.HistoryTypeDecrypt}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID == "" {
		t.Fatal("Append should assign an ID")
	}
	if entries[0].Date == "" {
		t.Fatal("Append should assign a date")
	}
}

func TestAppendPublishesHistoryUpdated(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe(events.HistoryUpdated)
	store := newTestStore(t, bus)

	if err := store.Append(context.Background(), models.HistoryEntry{Title: "x", Status: "completed"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	select {
	case evt := <-ch:
		entry, ok := evt.Payload.(models.HistoryEntry)
		if !ok || entry.Title != "x" {
			t.Fatalf("unexpected payload: %+v", evt.Payload)
		}
	default:
		t.Fatal("Append did not publish HistoryUpdated")
	}
}

func TestLoadByTypeFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	entries := []models.HistoryEntry{
		{Title: "a.txt", Status: "completed", Type: models.HistoryTypeEncrypt},
		{Title: "https://one.example", Status: "safe", Type: models.HistoryTypeWebsite},
		{Title: "b.txt", Status: "completed", Type: models.HistoryTypeEncrypt},
	}
	for _, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.LoadByType(ctx, models.HistoryTypeEncrypt)
	if err != nil {
		t.Fatalf("LoadByType: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 encrypt entries, got %d", len(got))
	}
	if got[0].Title != "b.txt" || got[1].Title != "a.txt" {
		t.Fatalf("expected newest first, got %+v", got)
	}
}

func TestSaveReportThenLatestRoundTrips(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	older := &models.ScanResult{Success: true, URL: "https://old.example", VulnerabilityCount: 1,
		Vulnerabilities: []models.Vulnerability{{Type: "XSS", Severity: "MEDIUM", Confidence: 0.8, Location: "GET /search"}}}
	newer := &models.ScanResult{Success: true, URL: "https://new.example", VulnerabilityCount: 2,
		Vulnerabilities: []models.Vulnerability{
			{Type: "SQL Injection", Severity: "CRITICAL", Confidence: 0.95, Location: "POST /login - id"},
			{Type: "CSP Missing", Severity: "LOW", Confidence: 1, Location: "response headers"},
		}}
	for _, r := range []*models.ScanResult{older, newer} {
		if err := store.SaveReport(ctx, r); err != nil {
			t.Fatalf("SaveReport: %v", err)
		}
	}

	got, err := store.LatestReport(ctx)
	if err != nil {
		t.Fatalf("LatestReport: %v", err)
	}
	if !reflect.DeepEqual(got, newer) {
		t.Fatalf("latest report mismatch:\ngot  %+v\nwant %+v", got, newer)
	}
}

func TestLatestReportEmptyCacheIsNil(t *testing.T) {
	store := newTestStore(t, nil)

	got, err := store.LatestReport(context.Background())
	if err != nil {
		t.Fatalf("LatestReport: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for an empty cache, got %+v", got)
	}
}
