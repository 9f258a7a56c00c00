package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Default option values for the ImaginePro API client
const (
	DefaultBaseURL       = "https://api.imaginepro.ai"
	DefaultTimeout       = 1800 * time.Second
	DefaultFetchInterval = 2 * time.Second
)

// Options holds the configuration for the ImaginePro client. Options are
// fixed at client construction; there is no process-wide mutable default.
type Options struct {
	// APIKey authenticates every request. Required.
	APIKey string `envconfig:"API_KEY"`

	// BaseURL is the API endpoint root.
	BaseURL string `envconfig:"BASE_URL"`

	// DefaultTimeout bounds how long FetchMessage polls for completion
	// when the caller does not pass an explicit timeout.
	DefaultTimeout time.Duration `envconfig:"DEFAULT_TIMEOUT"`

	// FetchInterval is the pause between status checks while polling.
	FetchInterval time.Duration `envconfig:"FETCH_INTERVAL"`

	// Debug enables request/response logging.
	Debug bool `envconfig:"DEBUG"`
}

// ApplyDefaults fills unset fields with the documented defaults. The API
// key has no default.
func (o *Options) ApplyDefaults() {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.DefaultTimeout <= 0 {
		o.DefaultTimeout = DefaultTimeout
	}
	if o.FetchInterval <= 0 {
		o.FetchInterval = DefaultFetchInterval
	}
}

// Validate checks if the options are usable
func (o *Options) Validate() error {
	if o.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	if o.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if o.DefaultTimeout <= 0 {
		return fmt.Errorf("default timeout must be positive")
	}
	if o.FetchInterval <= 0 {
		return fmt.Errorf("fetch interval must be positive")
	}
	return nil
}

// LoadOptions loads configuration from IMAGINEPRO_* environment variables
// on top of the defaults.
func LoadOptions() (Options, error) {
	var opts Options
	if err := envconfig.Process("imaginepro", &opts); err != nil {
		return Options{}, fmt.Errorf("failed to read environment: %w", err)
	}
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// fileOptions is the YAML shape of a config file; durations are given
// in time.ParseDuration notation ("30m", "2s").
type fileOptions struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	DefaultTimeout string `yaml:"default_timeout"`
	FetchInterval  string `yaml:"fetch_interval"`
	Debug          bool   `yaml:"debug"`
}

// LoadOptionsFile loads configuration from a YAML file.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read config file: %w", err)
	}
	var file fileOptions
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Options{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	opts := Options{
		APIKey:  file.APIKey,
		BaseURL: file.BaseURL,
		Debug:   file.Debug,
	}
	if file.DefaultTimeout != "" {
		opts.DefaultTimeout, err = time.ParseDuration(file.DefaultTimeout)
		if err != nil {
			return Options{}, fmt.Errorf("invalid default_timeout: %w", err)
		}
	}
	if file.FetchInterval != "" {
		opts.FetchInterval, err = time.ParseDuration(file.FetchInterval)
		if err != nil {
			return Options{}, fmt.Errorf("invalid fetch_interval: %w", err)
		}
	}

	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
