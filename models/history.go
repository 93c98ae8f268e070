package models

import "time"

// History entry types. Each successful user action records one entry.
const (
	HistoryTypeEncrypt = "encrypt"
	HistoryTypeDecrypt = "decrypt"
	HistoryTypeWebsite = "website"
)

// HistoryEntry is a locally recorded summary of a past action.
// Entries are append-only and listed newest-first.
type HistoryEntry struct {
	ID     string `json:"id"     db:"id"`
	Title  string `json:"title"  db:"title"`
	Status string `json:"status" db:"status"`
	Date   string `json:"date"   db:"date"`
	Type   string `json:"type,omitempty" db:"entry_type"`
}

// InspectionResult is the synchronous output of POST /website/inspect.
type InspectionResult struct {
	URL             string   `json:"url"`
	Status          string   `json:"status"` // safe|warning|dangerous
	Score           int      `json:"score"`
	Threats         []string `json:"threats"`
	Recommendations []string `json:"recommendations"`
	ScanDate        string   `json:"scanDate"`
}

// InspectionRecord is one row of the server-side inspection history.
type InspectionRecord struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Status   string `json:"status"`
	Score    int    `json:"score"`
	ScanDate string `json:"scanDate"`
}

// StoredReport is a completed scan result cached locally so results can be
// browsed in the TUI without re-running the analysis.
type StoredReport struct {
	ID        int64     `json:"id"         db:"id"`
	URL       string    `json:"url"        db:"url"`
	Payload   string    `json:"payload"    db:"payload"` // verbatim ScanResult JSON
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
