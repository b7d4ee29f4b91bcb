package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultUpstreamTimeout = 25 * time.Second
	defaultPort            = "8888"
	defaultMaxMessageLen   = 8000
)

// Config is everything the relay reads from the environment.
type Config struct {
	LangflowBaseURL string
	FlowID          string
	APIKey          string
	Token           string

	// ParamPrefix switches credential loading to SSM when non-empty.
	ParamPrefix string

	UpstreamTimeout  time.Duration
	MaxMessageLength int
	Port             string
	LogLevel         slog.Level
}

// LoadDotEnv loads .env into the process environment if it exists. Values
// already set in the environment win.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	timeout, err := envDuration("UPSTREAM_TIMEOUT", defaultUpstreamTimeout)
	if err != nil {
		return nil, err
	}
	maxLen, err := envInt("MAX_MESSAGE_LENGTH", defaultMaxMessageLen)
	if err != nil {
		return nil, err
	}
	level, err := parseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LangflowBaseURL:  strings.TrimSpace(os.Getenv("LANGFLOW_BASE_URL")),
		FlowID:           strings.TrimSpace(os.Getenv("FLOW_ID")),
		APIKey:           os.Getenv("LANGFLOW_API_KEY"),
		Token:            os.Getenv("HF_TOKEN"),
		ParamPrefix:      strings.TrimRight(strings.TrimSpace(os.Getenv("PARAM_PREFIX")), "/"),
		UpstreamTimeout:  timeout,
		MaxMessageLength: maxLen,
		Port:             getEnv("PORT", defaultPort),
		LogLevel:         level,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports missing settings without which no upstream URL can be built.
func (c *Config) Validate() error {
	var missing []string
	if c.LangflowBaseURL == "" {
		missing = append(missing, "LANGFLOW_BASE_URL")
	}
	if c.FlowID == "" {
		missing = append(missing, "FLOW_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("config: UPSTREAM_TIMEOUT must be positive, got %s", c.UpstreamTimeout)
	}
	return nil
}

// Addr is the dev server listen address.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: invalid %s value %q", key, v)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s value %q: %w", key, v, err)
	}
	return d, nil
}

func parseLevel(v string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(v) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid LOG_LEVEL value %q", v)
	}
	return level, nil
}
