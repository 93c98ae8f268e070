package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sanghyxuk/shieldhub-cli/internal/config"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

func newTestDB(t *testing.T) DB {
	t.Helper()
	db, err := New(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if err := db.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestInsertAndSelectRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	entry := models.HistoryEntry{ID: "h1", Title: "report.pdf", Status: "completed", Date: "2026.08.29", Type: "encrypt"}
	if _, err := db.Insert(ctx, "history_entries", entry); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var got []models.HistoryEntry
	err := db.Select(ctx, &got,
		`SELECT id, title, status, date, entry_type FROM history_entries WHERE id = ?`, "h1")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(got) != 1 || got[0] != entry {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	if _, err := New(config.DatabaseConfig{Driver: "postgres"}); err == nil {
		t.Fatal("expected an error for an unsupported driver")
	}
}
