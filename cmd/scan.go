package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sanghyxuk/shieldhub-cli/internal/analysis"
	"github.com/sanghyxuk/shieldhub-cli/internal/database"
	"github.com/sanghyxuk/shieldhub-cli/internal/history"
	"github.com/sanghyxuk/shieldhub-cli/internal/report"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

var (
	scanOutputFmt  string
	scanReportFlag bool
	scanTimeout    time.Duration
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Run a full vulnerability scan of a website",
	Long: `Submits the URL to the Shield Hub analysis service and polls until the
scan completes, then renders the findings grouped by severity.

Examples:
  shieldhub scan https://example.com
  shieldhub scan https://example.com --output json
  shieldhub scan https://example.com --report`,
	Args: cobra.ExactArgs(1),
	RunE: runScanCmd,
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutputFmt, "output", "o", "table", "Output format: table|json|yaml")
	scanCmd.Flags().BoolVar(&scanReportFlag, "report", false, "Also write a scan-report-<timestamp>.json file")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 10*time.Minute, "Give up on the scan after this long")
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	url := args[0]
	poller := analysis.NewPoller(app.client, app.cfg.Analysis)

	id, err := poller.Submit(ctx, url)
	if err != nil {
		return friendlyErr(err)
	}
	slog.Info("Scan submitted", "url", url, "analysis_id", id)
	fmt.Printf("Scanning %s\n", url)
	fmt.Println(dimStyle.Render("Waiting for results ..."))

	var result *models.ScanResult
	runErr := poller.Run(ctx, id, analysis.Callbacks{
		OnCompleted: func(_ string, r *models.ScanResult) { result = r },
		OnFailed: func(_ string, err error) {
			slog.Warn("Scan did not complete", "analysis_id", id, "error", err)
		},
	})
	if runErr != nil {
		return friendlyErr(fmt.Errorf("scan failed: %w", runErr))
	}

	if err := renderScanResult(result, scanOutputFmt); err != nil {
		return err
	}

	if scanReportFlag {
		name := report.FileName(time.Now())
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		if err := report.WriteJSON(f, result); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Report written to " + name))
	}

	recordScan(app, url, result)
	return nil
}

func renderScanResult(result *models.ScanResult, format string) error {
	switch format {
	case "json":
		return report.WriteJSON(os.Stdout, result)
	case "yaml":
		return report.WriteYAML(os.Stdout, result)
	case "table", "":
		return report.WriteText(os.Stdout, result)
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

// recordScan appends the scan to the local history and caches the result for
// the TUI. Failures here never fail the scan itself.
func recordScan(app *app, url string, result *models.ScanResult) {
	ctx := context.Background()

	db, err := database.New(app.cfg.Database)
	if err != nil {
		slog.Warn("Could not open history database", "error", err)
		return
	}
	defer db.Close() //nolint:errcheck
	if err := db.Migrate(ctx); err != nil {
		slog.Warn("Could not migrate history database", "error", err)
		return
	}

	store := history.NewStore(db, app.bus)
	if err := store.SaveReport(ctx, result); err != nil {
		slog.Warn("Could not cache scan report", "error", err)
	}
	err = store.Append(ctx, models.HistoryEntry{
		Title:  url,
		Status: fmt.Sprintf("%d findings", result.VulnerabilityCount),
		Type:   models.HistoryTypeWebsite,
	})
	if err != nil {
		slog.Warn("Could not append history entry", "error", err)
	}
}
