package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/sanghyxuk/shieldhub-cli/internal/database"
	"github.com/sanghyxuk/shieldhub-cli/internal/history"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

var watchSchedule string

var watchCmd = &cobra.Command{
	Use:   "watch [url ...]",
	Short: "Re-inspect websites on a schedule",
	Long: `Runs the quick website inspection for each URL on a cron schedule and
records the verdicts in the local history. URLs given as arguments are added
to the watch.urls list from the config file. Runs until interrupted.

Examples:
  shieldhub watch https://example.com
  shieldhub watch --schedule "@every 15m" https://example.com https://foo.dev`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "",
		`cron expression or @every duration (default from config, "@hourly")`)
}

func runWatch(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	urls := append(app.cfg.Watch.URLs, args...)
	if len(urls) == 0 {
		return fmt.Errorf("nothing to watch: pass URLs or set watch.urls in the config")
	}
	schedule := watchSchedule
	if schedule == "" {
		schedule = app.cfg.Watch.Schedule
	}

	db, err := database.New(app.cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close() //nolint:errcheck
	if err := db.Migrate(context.Background()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	store := history.NewStore(db, app.bus)

	runner := cron.New()
	_, err = runner.AddFunc(schedule, func() { watchPass(app, store, urls) })
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	fmt.Printf("Watching %d site(s) on schedule %q. Ctrl-C to stop.\n", len(urls), schedule)

	// First pass immediately so the user sees output before the first tick.
	watchPass(app, store, urls)

	runner.Start()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	ctx := runner.Stop()
	<-ctx.Done()
	fmt.Println(dimStyle.Render("Watch stopped."))
	return nil
}

func watchPass(app *app, store *history.Store, urls []string) {
	for _, url := range urls {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		res, err := app.client.Inspect(ctx, url)
		cancel()
		if err != nil {
			slog.Warn("Watch inspection failed", "url", url, "error", err)
			continue
		}
		fmt.Printf("%s  %-8s score=%d  %s\n",
			time.Now().Format("15:04:05"), res.Status, res.Score, url)
		err = store.Append(context.Background(), models.HistoryEntry{
			Title:  url,
			Status: res.Status,
			Type:   models.HistoryTypeWebsite,
		})
		if err != nil {
			slog.Warn("Could not record watch result", "url", url, "error", err)
		}
	}
}
