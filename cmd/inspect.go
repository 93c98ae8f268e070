package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sanghyxuk/shieldhub-cli/internal/database"
	"github.com/sanghyxuk/shieldhub-cli/internal/history"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <url>",
	Short: "Run a quick website safety check",
	Long: `Runs the synchronous website inspection: a fast safety verdict with a
score, known threats, and recommendations. For a full vulnerability scan
use 'shieldhub scan'.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var inspectHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past inspections stored on the server",
	RunE:  runInspectHistory,
}

var inspectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one past inspection",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspectShow,
}

var inspectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an inspection from the server history",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspectDelete,
}

func init() {
	inspectCmd.AddCommand(inspectHistoryCmd, inspectShowCmd, inspectDeleteCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	url := args[0]
	res, err := app.client.Inspect(ctx, url)
	if err != nil {
		return friendlyErr(err)
	}

	printInspection(res)
	recordInspection(app, url, res)
	return nil
}

func runInspectHistory(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	records, err := app.client.InspectionHistory(ctx)
	if err != nil {
		return friendlyErr(err)
	}
	if len(records) == 0 {
		fmt.Println(dimStyle.Render("No inspections yet."))
		return nil
	}
	for _, r := range records {
		fmt.Printf("%6d  %-8s %3d  %-12s %s\n", r.ID, r.Status, r.Score, r.ScanDate, r.URL)
	}
	return nil
}

func runInspectShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid inspection id %q", args[0])
	}
	res, err := app.client.InspectionResult(ctx, id)
	if err != nil {
		return friendlyErr(err)
	}
	printInspection(res)
	return nil
}

func runInspectDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid inspection id %q", args[0])
	}
	if err := app.client.DeleteInspection(ctx, id); err != nil {
		return friendlyErr(err)
	}
	fmt.Println(successStyle.Render("Inspection deleted"))
	return nil
}

func printInspection(res *models.InspectionResult) {
	fmt.Println(headerStyle.Render("Website Inspection"))
	fmt.Printf("URL:    %s\n", res.URL)
	fmt.Printf("Status: %s\n", res.Status)
	fmt.Printf("Score:  %d\n", res.Score)
	fmt.Printf("Date:   %s\n", res.ScanDate)

	if len(res.Threats) > 0 {
		fmt.Println()
		fmt.Println(warnStyle.Render("Threats"))
		for _, t := range res.Threats {
			fmt.Printf("  - %s\n", t)
		}
	}
	if len(res.Recommendations) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Recommendations"))
		for _, r := range res.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	}
}

func recordInspection(app *app, url string, res *models.InspectionResult) {
	ctx := context.Background()

	db, err := database.New(app.cfg.Database)
	if err != nil {
		return
	}
	defer db.Close() //nolint:errcheck
	if err := db.Migrate(ctx); err != nil {
		return
	}
	_ = history.NewStore(db, app.bus).Append(ctx, models.HistoryEntry{
		Title:  url,
		Status: res.Status,
		Type:   models.HistoryTypeWebsite,
	})
}
