package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sanghyxuk/shieldhub-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and manage shieldhub configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.ConfigPath(cfgFile)
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.ConfigPath(cfgFile)
		if err != nil {
			return err
		}
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "nano"
		}
		fmt.Printf("Opening %s with %s...\n", p, editor)
		c := exec.Command(editor, p) // #nosec G204 -- editor is from $EDITOR env var, intentional user-controlled binary
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := config.Save(cfg, cfgFile); err != nil {
			return err
		}
		p, _ := config.ConfigPath(cfgFile)
		fmt.Println(successStyle.Render("Config written to " + p))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single configuration value",
	Long: `Sets one configuration key and writes the file back.

Supported keys:
  server.url                 backend base URL
  server.timeout_seconds     per-request timeout
  server.rate_per_second     outbound request throttle
  analysis.poll_interval_ms  delay between scan status polls
  analysis.max_fetch_retries transient poll failures before giving up
  database.driver            sqlite or mysql
  database.path              SQLite file path
  database.dsn               MySQL data source name
  watch.schedule             cron expression for 'shieldhub watch'`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	switch key {
	case "server.url":
		cfg.Server.URL = value
	case "server.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s needs an integer, got %q", key, value)
		}
		cfg.Server.TimeoutSeconds = n
	case "server.rate_per_second":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s needs a number, got %q", key, value)
		}
		cfg.Server.RatePerSecond = f
	case "analysis.poll_interval_ms":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s needs an integer, got %q", key, value)
		}
		cfg.Analysis.PollIntervalMs = n
	case "analysis.max_fetch_retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s needs an integer, got %q", key, value)
		}
		cfg.Analysis.MaxFetchRetries = n
	case "database.driver":
		if value != "sqlite" && value != "mysql" {
			return fmt.Errorf("database.driver must be sqlite or mysql")
		}
		cfg.Database.Driver = value
	case "database.path":
		cfg.Database.Path = value
	case "database.dsn":
		cfg.Database.DSN = value
	case "watch.schedule":
		cfg.Watch.Schedule = value
	default:
		return fmt.Errorf("unknown key %q (see 'shieldhub config set --help')", key)
	}

	if err := config.Save(cfg, cfgFile); err != nil {
		return err
	}
	fmt.Println(successStyle.Render(key + " updated"))
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd, configPathCmd, configEditCmd, configInitCmd, configSetCmd)
}
