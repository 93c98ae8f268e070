package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanghyxuk/shieldhub-cli/internal/database"
	"github.com/sanghyxuk/shieldhub-cli/internal/history"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

var historyType string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your local action history",
	Long: `Lists locally recorded actions (encryptions, decryptions, website
checks), newest first. This list lives on this machine only; server-side
inspection history is under 'shieldhub inspect history'.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyType, "type", "t", "",
		"filter by entry type: encrypt|decrypt|website")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := newApp()
	if err != nil {
		return err
	}

	db, err := database.New(app.cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close() //nolint:errcheck
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	store := history.NewStore(db, app.bus)
	var entries []models.HistoryEntry
	if historyType != "" {
		entries, err = store.LoadByType(ctx, historyType)
	} else {
		entries, err = store.LoadAll(ctx)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("No history yet. Scans and file operations show up here."))
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%-12s %-10s %-16s %s\n", e.Date, e.Type, e.Status, e.Title)
	}
	return nil
}
