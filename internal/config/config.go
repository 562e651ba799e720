package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "LISTKEEPER"

type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	DBPath         string        `envconfig:"DB_PATH" default:"listkeeper.db"`
	APIURL         string        `envconfig:"API_URL" default:"http://localhost:5000/api"`
	APITimeout     time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string        `envconfig:"LOG_FORMAT" default:"text"`
	StateKey       string        `envconfig:"STATE_KEY"`
	Locale         string        `envconfig:"LOCALE" default:"es"`
	LoginRateLimit int           `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	// OriginPatterns lists hosts allowed to open the live refresh socket from
	// another origin, e.g. "localhost:5173".
	OriginPatterns []string `envconfig:"WS_ORIGINS"`

	// Images go through the backend unless a bucket is configured.
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
	S3PublicURL string `envconfig:"S3_PUBLIC_URL"`
}

// Load reads LISTKEEPER_* variables. Callers load any .env file first.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s_API_URL must be an http(s) URL, got %q", EnvPrefix, c.APIURL)
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.APITimeout <= 0 {
		return fmt.Errorf("%s_API_TIMEOUT must be positive", EnvPrefix)
	}
	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("%s_LOGIN_RATE_LIMIT must be positive", EnvPrefix)
	}
	return nil
}

// Addr is the listen address for the gateway.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Sealed reports whether the persisted session is encrypted.
func (c *Config) Sealed() bool {
	return c.StateKey != ""
}
