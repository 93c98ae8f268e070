package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sanghyxuk/shieldhub-cli/internal/api"
	"github.com/sanghyxuk/shieldhub-cli/internal/config"
	"github.com/sanghyxuk/shieldhub-cli/internal/events"
	"github.com/sanghyxuk/shieldhub-cli/internal/session"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#1E3A8A")).
	MarginBottom(1)

var successStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#10B981"))

var warnStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#F59E0B"))

var dimStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#6B7280"))

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "shieldhub",
	Short: "Client for the Shield Hub website security and file protection service",
	Long: `shieldhub is the command-line client for Shield Hub: run website
vulnerability scans, encrypt and decrypt files through the remote crypto
service, and review your scan and protection history.

Get started:
  shieldhub login      Sign in to your Shield Hub account
  shieldhub scan       Run a full vulnerability scan of a website
  shieldhub inspect    Run a quick website safety check
  shieldhub encrypt    Encrypt a file via the protection service
  shieldhub history    Show your local action history
  shieldhub ui         Launch the terminal UI`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.shieldhub/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose/debug output")

	rootCmd.Version = Version
	rootCmd.AddCommand(
		loginCmd,
		logoutCmd,
		registerCmd,
		accountCmd,
		scanCmd,
		inspectCmd,
		historyCmd,
		encryptCmd,
		decryptCmd,
		watchCmd,
		uiCmd,
		doctorCmd,
		configCmd,
	)
}

func initLogging() {
	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		slog.Debug("Verbose logging enabled")
	}
}

// app bundles the pieces nearly every command needs: config, event bus,
// session store, and the API client wired to both.
type app struct {
	cfg      *config.Config
	bus      *events.Bus
	sessions *session.Store
	client   *api.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	bus := events.NewBus()

	sessionPath, err := config.SessionPath()
	if err != nil {
		return nil, fmt.Errorf("resolving session path: %w", err)
	}
	sessions, err := session.NewStore(sessionPath, bus)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		bus:      bus,
		sessions: sessions,
		client:   api.New(cfg.Server, sessions, bus),
	}, nil
}

// friendlyErr maps client sentinel errors to actionable messages.
func friendlyErr(err error) error {
	switch {
	case errors.Is(err, api.ErrAuthRequired):
		return fmt.Errorf("login required — run 'shieldhub login' first")
	case errors.Is(err, api.ErrUnauthorized):
		return fmt.Errorf("session expired — run 'shieldhub login' again")
	default:
		return err
	}
}
