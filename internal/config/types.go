package config

// Config is the root configuration structure for shieldhub.
// Serialised to ~/.shieldhub/config.json.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   json:"server"`
	Analysis AnalysisConfig `mapstructure:"analysis" json:"analysis"`
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Watch    WatchConfig    `mapstructure:"watch"    json:"watch"`
}

// ServerConfig points the client at the Shield Hub backend.
type ServerConfig struct {
	// URL is the backend base URL (default: https://shieldhub.dev).
	URL string `mapstructure:"url" json:"url"`
	// TimeoutSeconds bounds each HTTP request (default: 15).
	TimeoutSeconds int `mapstructure:"timeout_seconds" json:"timeout_seconds"`
	// RatePerSecond throttles outbound API calls (default: 5).
	RatePerSecond float64 `mapstructure:"rate_per_second" json:"rate_per_second"`
}

// AnalysisConfig controls the scan status poller.
type AnalysisConfig struct {
	// PollIntervalMs is the delay between status polls (default: 1000).
	PollIntervalMs int `mapstructure:"poll_interval_ms" json:"poll_interval_ms"`
	// MaxFetchRetries bounds transient poll failures before the job is
	// declared failed (default: 3).
	MaxFetchRetries int `mapstructure:"max_fetch_retries" json:"max_fetch_retries"`
}

// DatabaseConfig controls the local history/report store.
type DatabaseConfig struct {
	// Driver is "sqlite" (default) or "mysql".
	Driver string `mapstructure:"driver" json:"driver"`
	// Path is the SQLite file path (expanded at runtime).
	Path string `mapstructure:"path"   json:"path"`
	// DSN is the MySQL data source name (used when Driver == "mysql").
	DSN string `mapstructure:"dsn"    json:"dsn"`
}

// WatchConfig controls the scheduled re-inspection daemon.
type WatchConfig struct {
	// Schedule is a cron expression (default: "@hourly").
	Schedule string `mapstructure:"schedule" json:"schedule"`
	// URLs are the websites re-inspected on each tick.
	URLs []string `mapstructure:"urls" json:"urls"`
}
