package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sanghyxuk/shieldhub-cli/internal/config"
	"github.com/sanghyxuk/shieldhub-cli/internal/database"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify configuration, session, and service health",
	Long: `Checks that the config file is readable, the local database can be
reached, a session is present, and the Shield Hub service answers.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	allOK := true

	fmt.Println("=== shieldhub doctor ===")
	fmt.Println()

	// Config
	fmt.Print("Config ................... ")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Printf("FAIL (%s)\n", err)
		return fmt.Errorf("cannot continue without config: %w", err)
	}
	path, _ := config.ConfigPath(cfgFile)
	fmt.Printf("OK (%s)\n", path)

	// Database
	fmt.Print("Database ................. ")
	db, err := database.New(cfg.Database)
	if err != nil {
		fmt.Printf("FAIL (%s)\n", err)
		allOK = false
	} else {
		if err := db.Ping(ctx); err != nil {
			fmt.Printf("FAIL (%s)\n", err)
			allOK = false
		} else {
			fmt.Printf("OK (%s: %s)\n", db.Driver(), cfg.Database.Path)
		}
		db.Close()
	}

	// Session
	app, err := newApp()
	if err != nil {
		return err
	}
	fmt.Print("Session .................. ")
	sess := app.sessions.Current()
	if !sess.LoggedIn() {
		fmt.Println("none (run 'shieldhub login')")
	} else {
		fmt.Printf("OK (signed in as %s)\n", sess.Username)
	}

	// Service reachability. An auth error still proves the server answered.
	fmt.Print("Shield Hub service ....... ")
	if !sess.LoggedIn() {
		fmt.Printf("SKIPPED (no session; server: %s)\n", cfg.Server.URL)
	} else if _, err := app.client.InspectionHistory(ctx); err != nil {
		fmt.Printf("WARN (%s)\n", friendlyErr(err))
		allOK = false
	} else {
		fmt.Printf("OK (%s)\n", cfg.Server.URL)
	}

	fmt.Println()
	if allOK {
		fmt.Println(successStyle.Render("All checks passed."))
	} else {
		fmt.Println(warnStyle.Render("Some checks failed; see above."))
	}
	return nil
}
