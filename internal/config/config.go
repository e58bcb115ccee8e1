package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultAPIURL is the production backend.
const DefaultAPIURL = "https://oab.doutoraia.com"

// envFiles are tried in order; the first one found is loaded.
var envFiles = []string{".env", "../.env", "../../.env"}

// Client holds the settings of the command-line front-end.
type Client struct {
	APIURL       string `env:"OAB_API_URL"`
	LegacyAPIURL string `env:"NEXT_PUBLIC_API_URL"`
	ChatURL      string `env:"OAB_CHAT_URL"`
	ChatAPIKey   string `env:"OAB_CHAT_API_KEY"`
	SessionDB    string `env:"OAB_SESSION_DB"`
	Verbose      bool   `env:"OAB_VERBOSE" envDefault:"false"`
}

// DevServer holds the settings of the development backend.
type DevServer struct {
	Port           string        `env:"DEVSERVER_PORT" envDefault:"8090"`
	DatabasePath   string        `env:"DEVSERVER_DB" envDefault:"devserver.db"`
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"dev-jwt-secret-change-me"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"60m"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// LoadEnvFiles loads the first .env file found. A missing file is not an error.
func LoadEnvFiles() string {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err == nil {
			return file
		}
	}
	return ""
}

// LoadClient reads the client configuration from the environment.
func LoadClient() (*Client, error) {
	var cfg Client
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.APIURL == "" {
		cfg.APIURL = cfg.LegacyAPIURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.SessionDB == "" {
		cfg.SessionDB = defaultSessionDB()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configured URLs are usable.
func (c *Client) Validate() error {
	if err := checkHTTPURL("OAB_API_URL", c.APIURL); err != nil {
		return err
	}
	if c.ChatURL != "" {
		if err := checkHTTPURL("OAB_CHAT_URL", c.ChatURL); err != nil {
			return err
		}
	}
	return nil
}

// LoadDevServer reads the development backend configuration.
func LoadDevServer() (*DevServer, error) {
	var cfg DevServer
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("TOKEN_TTL must be positive")
	}
	return &cfg, nil
}

func checkHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}

func defaultSessionDB() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "session.db"
	}
	return filepath.Join(home, ".oab", "session.db")
}
