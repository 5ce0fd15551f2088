package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/muurk/jeopardy/internal/pacing"
	"github.com/muurk/jeopardy/internal/trivia"
)

// CurrentVersion is the schema version written by Save
const CurrentVersion = 1

// Registry represents the entire user configuration file.
// Every setting can also come from the environment; see ApplyEnv.
type Registry struct {
	Version     int         `yaml:"version"`
	API         API         `yaml:"api"`
	Pacing      Pacing      `yaml:"pacing"`
	Server      Server      `yaml:"server"`
	Preferences Preferences `yaml:"preferences"`
}

// API configures the trivia service client.
type API struct {
	BaseURL       string        `yaml:"base_url" env:"JEOPARDY_API_URL" env-description:"Base URL of the jService-compatible trivia API"`
	Timeout       time.Duration `yaml:"timeout" env:"JEOPARDY_API_TIMEOUT" env-description:"Timeout of a single API request"`
	PoolSize      int           `yaml:"pool_size" env:"JEOPARDY_POOL_SIZE" env-description:"Number of categories to draw the six from"`
	MaxRetries    int           `yaml:"max_retries" env:"JEOPARDY_MAX_RETRIES" env-description:"Automatic retries of a failed request (0 disables)"`
	CacheDuration time.Duration `yaml:"cache_duration" env:"JEOPARDY_CACHE_DURATION" env-description:"How long fetched clue lists are reused (negative disables)"`
}

// Pacing configures the pause before each category request.
type Pacing struct {
	Mode  string        `yaml:"mode" env:"JEOPARDY_PACING" env-description:"Request pacing: fixed or adaptive"`
	Delay time.Duration `yaml:"delay" env:"JEOPARDY_PACING_DELAY" env-description:"Pause before each category request"`
}

// Server configures the browser board.
type Server struct {
	Addr     string `yaml:"addr" env:"JEOPARDY_ADDR" env-description:"Listen address of the browser board"`
	Announce bool   `yaml:"announce" env:"JEOPARDY_ANNOUNCE" env-description:"Announce the board on the local network"`
	Instance string `yaml:"instance,omitempty" env:"JEOPARDY_INSTANCE" env-description:"Name the board is announced under"`
	CertPath string `yaml:"cert_path,omitempty" env:"JEOPARDY_TLS_CERT" env-description:"TLS certificate (serve HTTPS when set with the key)"`
	KeyPath  string `yaml:"key_path,omitempty" env:"JEOPARDY_TLS_KEY" env-description:"TLS private key"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoStart   bool          `yaml:"auto_start" env:"JEOPARDY_AUTO_START" env-description:"Deal a board as soon as play starts"`
	ScanTimeout time.Duration `yaml:"scan_timeout" env:"JEOPARDY_SCAN_TIMEOUT" env-description:"How long scan listens for boards"`
}

// Default returns a Registry with every setting at its default value.
func Default() *Registry {
	return &Registry{
		Version: CurrentVersion,
		API: API{
			BaseURL:       trivia.DefaultBaseURL,
			Timeout:       trivia.DefaultTimeout,
			PoolSize:      trivia.DefaultPoolSize,
			MaxRetries:    trivia.DefaultMaxRetries,
			CacheDuration: trivia.DefaultCacheDuration,
		},
		Pacing: Pacing{
			Mode:  pacing.ModeFixed,
			Delay: pacing.DefaultDelay,
		},
		Server: Server{
			Addr: ":8080",
		},
		Preferences: Preferences{
			ScanTimeout: 5 * time.Second,
		},
	}
}

// Validate checks settings that would otherwise fail much later
func (r *Registry) Validate() error {
	if r.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", r.Version, CurrentVersion)
	}

	u, err := url.Parse(r.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q", r.API.BaseURL)
	}
	if r.API.PoolSize < 6 {
		return fmt.Errorf("api.pool_size must be at least 6, got %d", r.API.PoolSize)
	}
	if r.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries must not be negative, got %d", r.API.MaxRetries)
	}

	switch r.Pacing.Mode {
	case "", pacing.ModeFixed, pacing.ModeAdaptive:
	default:
		return fmt.Errorf("pacing.mode must be %q or %q, got %q", pacing.ModeFixed, pacing.ModeAdaptive, r.Pacing.Mode)
	}
	if r.Pacing.Delay < 0 {
		return fmt.Errorf("pacing.delay must not be negative, got %s", r.Pacing.Delay)
	}

	return nil
}

// ClientOptions maps the API settings onto trivia client options
func (r *Registry) ClientOptions() trivia.Options {
	return trivia.Options{
		BaseURL:       r.API.BaseURL,
		Timeout:       r.API.Timeout,
		PoolSize:      r.API.PoolSize,
		MaxRetries:    r.API.MaxRetries,
		CacheDuration: r.API.CacheDuration,
	}
}

// NewPacer builds the configured request pacer
func (r *Registry) NewPacer() (pacing.Pacer, error) {
	return pacing.New(r.Pacing.Mode, r.Pacing.Delay)
}
