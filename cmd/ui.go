package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanghyxuk/shieldhub-cli/internal/database"
	"github.com/sanghyxuk/shieldhub-cli/internal/history"
	"github.com/sanghyxuk/shieldhub-cli/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the terminal UI",
	Long:  `Opens the interactive terminal UI for browsing the latest scan results and your action history.`,
	RunE:  runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
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
	return tui.NewApp(store, app.bus, app.sessions.Current()).Run()
}
