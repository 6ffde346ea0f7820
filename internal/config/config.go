package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/jessevdk/go-flags"

	"castmind/backend/internal/resolver"
)

const DefaultUserAgent = "Mozilla/5.0 (compatible; CastMind/1.0; +https://github.com/castmind)"

// Browser identity sent with Chrome-fingerprint requests.
const (
	ChromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	ChromeSecChUa   = `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`
)

type rawConfig struct {
	Addr     string `long:"addr" env:"CASTMIND_ADDR" default:":8080" description:"HTTP listen address"`
	DataDir  string `long:"data-dir" env:"CASTMIND_DATA_DIR" default:"data" description:"Directory for the database and other state"`
	DBPath   string `long:"db-path" env:"CASTMIND_DB_PATH" description:"SQLite database path (defaults to <data-dir>/castmind.db)"`
	LogLevel string `long:"log-level" env:"CASTMIND_LOG_LEVEL" default:"info" description:"Log level: debug, info, warn, error"`
	Timezone string `long:"timezone" env:"CASTMIND_TIMEZONE" default:"Asia/Shanghai" description:"Timezone used for cron schedules"`

	UserAgent       string        `long:"user-agent" env:"CASTMIND_USER_AGENT" description:"User agent for feed requests"`
	Proxy           string        `long:"proxy" env:"CASTMIND_PROXY" description:"HTTP(S) proxy for outbound requests"`
	Mirrors         []string      `long:"mirror" env:"CASTMIND_MIRRORS" env-delim:"," description:"Route mirror base URL, in preference order (repeatable)"`
	FetchTimeout    time.Duration `long:"fetch-timeout" env:"CASTMIND_FETCH_TIMEOUT" default:"20s" description:"Timeout per candidate fetch attempt"`
	FetchTotal      time.Duration `long:"fetch-total-timeout" env:"CASTMIND_FETCH_TOTAL_TIMEOUT" default:"60s" description:"Timeout across all candidates of one feed"`
	MaxEntries      int           `long:"max-entries" env:"CASTMIND_MAX_ENTRIES" default:"50" description:"Entries kept from each fetched document"`
	FetchWorkers    int           `long:"fetch-workers" env:"CASTMIND_FETCH_WORKERS" default:"4" description:"Concurrent feed fetches (1-5)"`
	HostRate        float64       `long:"host-rate" env:"CASTMIND_HOST_RATE" default:"2" description:"Requests per second allowed to a single host"`
	BrowserFallback bool          `long:"browser-fallback" env:"CASTMIND_BROWSER_FALLBACK" description:"Retry blocked requests with a browser TLS fingerprint"`

	SchedulerDisabled bool          `long:"no-scheduler" env:"CASTMIND_SCHEDULER_DISABLED" description:"Do not start recurring jobs"`
	FetchInterval     time.Duration `long:"fetch-interval" env:"CASTMIND_FETCH_INTERVAL" default:"10m" description:"Interval of the fetch-all-feeds job"`
	ProcessInterval   time.Duration `long:"process-interval" env:"CASTMIND_PROCESS_INTERVAL" default:"15m" description:"Interval of the process-unprocessed-entries job"`
	StatusInterval    time.Duration `long:"status-interval" env:"CASTMIND_STATUS_INTERVAL" default:"1h" description:"Interval of the status-reconciliation job"`
	CleanupCron       string        `long:"cleanup-cron" env:"CASTMIND_CLEANUP_CRON" default:"0 2 * * *" description:"Cron expression of the retention-cleanup job"`
	MisfireGrace      time.Duration `long:"misfire-grace" env:"CASTMIND_MISFIRE_GRACE" default:"30s" description:"How late a job may start before the run is skipped"`
	ProcessBatch      int           `long:"process-batch" env:"CASTMIND_PROCESS_BATCH" default:"100" description:"Articles analyzed per processing run"`
	RetentionDays     int           `long:"retention-days" env:"CASTMIND_RETENTION_DAYS" default:"30" description:"Age after which read and processed articles are deleted"`

	AIProvider  string  `long:"ai-provider" env:"CASTMIND_AI_PROVIDER" default:"keyword" description:"Analyzer: keyword, openai, compatible, anthropic"`
	AIAPIKey    string  `long:"ai-api-key" env:"CASTMIND_AI_API_KEY" description:"API key of the analyzer provider"`
	AIBaseURL   string  `long:"ai-base-url" env:"CASTMIND_AI_BASE_URL" description:"Base URL for OpenAI-compatible providers"`
	AIModel     string  `long:"ai-model" env:"CASTMIND_AI_MODEL" description:"Model name of the analyzer provider"`
	AIRateLimit float64 `long:"ai-rate-limit" env:"CASTMIND_AI_RATE_LIMIT" default:"1" description:"Analyzer requests per second"`
	Readability bool    `long:"readability" env:"CASTMIND_READABILITY" description:"Fetch full article text for thin entries before analysis"`

	APISecret        string `long:"api-secret" env:"CASTMIND_API_SECRET" description:"Secret for signing operator tokens; empty disables auth"`
	APIPasswordHash  string `long:"api-password-hash" env:"CASTMIND_API_PASSWORD_HASH" description:"bcrypt hash of the operator password"`
	SubscriptionFile string `long:"subscriptions" env:"CASTMIND_SUBSCRIPTIONS" description:"YAML file of feeds to subscribe at startup"`
}

type Config struct {
	Addr     string
	DataDir  string
	DBPath   string
	LogLevel string
	Location *time.Location

	UserAgent       string
	Proxy           string
	Mirrors         []string
	FetchTimeout    time.Duration
	FetchTotal      time.Duration
	MaxEntries      int
	FetchWorkers    int
	HostRate        float64
	BrowserFallback bool

	SchedulerEnabled bool
	FetchInterval    time.Duration
	ProcessInterval  time.Duration
	StatusInterval   time.Duration
	CleanupCron      string
	MisfireGrace     time.Duration
	ProcessBatch     int
	RetentionDays    int

	AI AIConfig

	APISecret        string
	APIPasswordHash  string
	SubscriptionFile string
}

type AIConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	RateLimit   float64
	Readability bool
}

// ErrHelp is returned when --help was requested and usage has been printed.
var ErrHelp = errors.New("help requested")

// Load reads configuration from the process arguments and environment.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs reads configuration from args and the environment. Flags win over env.
func LoadArgs(args []string) (Config, error) {
	var raw rawConfig
	parser := flags.NewParser(&raw, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			return Config{}, ErrHelp
		}
		return Config{}, fmt.Errorf("parse configuration: %w", err)
	}
	return build(raw)
}

func build(raw rawConfig) (Config, error) {
	dbPath := strings.TrimSpace(raw.DBPath)
	if dbPath == "" {
		dbPath = filepath.Join(raw.DataDir, "castmind.db")
	}

	loc, err := time.LoadLocation(raw.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("load timezone %q: %w", raw.Timezone, err)
	}

	userAgent := strings.TrimSpace(raw.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	cfg := Config{
		Addr:             raw.Addr,
		DataDir:          raw.DataDir,
		DBPath:           filepath.Clean(dbPath),
		LogLevel:         strings.ToLower(raw.LogLevel),
		Location:         loc,
		UserAgent:        userAgent,
		Proxy:            strings.TrimSpace(raw.Proxy),
		Mirrors:          normalizeMirrors(raw.Mirrors),
		FetchTimeout:     raw.FetchTimeout,
		FetchTotal:       raw.FetchTotal,
		MaxEntries:       raw.MaxEntries,
		FetchWorkers:     clamp(raw.FetchWorkers, 1, 5),
		HostRate:         raw.HostRate,
		BrowserFallback:  raw.BrowserFallback,
		SchedulerEnabled: !raw.SchedulerDisabled,
		FetchInterval:    raw.FetchInterval,
		ProcessInterval:  raw.ProcessInterval,
		StatusInterval:   raw.StatusInterval,
		CleanupCron:      raw.CleanupCron,
		MisfireGrace:     raw.MisfireGrace,
		ProcessBatch:     raw.ProcessBatch,
		RetentionDays:    raw.RetentionDays,
		AI: AIConfig{
			Provider:    strings.ToLower(strings.TrimSpace(raw.AIProvider)),
			APIKey:      raw.AIAPIKey,
			BaseURL:     raw.AIBaseURL,
			Model:       raw.AIModel,
			RateLimit:   raw.AIRateLimit,
			Readability: raw.Readability,
		},
		APISecret:        raw.APISecret,
		APIPasswordHash:  raw.APIPasswordHash,
		SubscriptionFile: raw.SubscriptionFile,
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.FetchTimeout <= 0 || c.FetchTotal <= 0:
		return errors.New("fetch timeouts must be positive")
	case c.FetchTotal < c.FetchTimeout:
		return errors.New("total fetch timeout must not be shorter than the per-attempt timeout")
	case c.MaxEntries <= 0:
		return errors.New("max entries must be positive")
	case c.FetchInterval <= 0 || c.ProcessInterval <= 0 || c.StatusInterval <= 0:
		return errors.New("job intervals must be positive")
	case c.ProcessBatch <= 0:
		return errors.New("process batch must be positive")
	case c.RetentionDays <= 0:
		return errors.New("retention days must be positive")
	}
	return nil
}

// normalizeMirrors trims trailing slashes and falls back to the defaults when fewer than two remain.
func normalizeMirrors(in []string) []string {
	out := make([]string, 0, len(in))
	for _, m := range in {
		m = strings.TrimRight(strings.TrimSpace(m), "/")
		if m != "" {
			out = append(out, m)
		}
	}
	if len(out) < 2 {
		return append([]string(nil), resolver.DefaultMirrors...)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
