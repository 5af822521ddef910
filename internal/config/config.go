package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DefaultPath = "config/config.yaml"

	defaultAddress         = ":4000"
	defaultBaseURL         = "https://ismaal.taamsolutions.net"
	defaultHTTPTimeout     = 20 * time.Second
	defaultSessionDriver   = "redis"
	defaultSessionTTL      = 12 * time.Hour
	defaultRedisAddr       = "localhost:6379"
	defaultBoardIdleTTL    = 30 * time.Minute
	defaultCleanupInterval = time.Minute
	defaultPerPage         = 10
)

type Config struct {
	Server struct {
		Address        string   `yaml:"address"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Marketplace struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"marketplace"`
	Session struct {
		Driver    string        `yaml:"driver"`
		TTL       time.Duration `yaml:"ttl"`
		JWTSecret string        `yaml:"jwt_secret"`
		File      string        `yaml:"file"`
	} `yaml:"session"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Moderation struct {
		BoardIdleTTL    time.Duration `yaml:"board_idle_ttl"`
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
		DefaultPerPage  int           `yaml:"default_per_page"`
	} `yaml:"moderation"`
}

// Default returns the configuration used when neither file nor environment
// set a value.
func Default() Config {
	var cfg Config
	cfg.Server.Address = defaultAddress
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.Marketplace.BaseURL = defaultBaseURL
	cfg.Marketplace.Timeout = defaultHTTPTimeout
	cfg.Session.Driver = defaultSessionDriver
	cfg.Session.TTL = defaultSessionTTL
	cfg.Session.File = defaultSessionFile()
	cfg.Redis.Addr = defaultRedisAddr
	cfg.Moderation.BoardIdleTTL = defaultBoardIdleTTL
	cfg.Moderation.CleanupInterval = defaultCleanupInterval
	cfg.Moderation.DefaultPerPage = defaultPerPage
	return cfg
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ismaal", "session.json")
	}
	return filepath.Join(home, ".ismaal", "session.json")
}

// Load reads the YAML file at path, when it exists, over the defaults and
// then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Server.Address = v
	} else if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Address = ":" + v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("MARKETPLACE_BASE_URL"); v != "" {
		cfg.Marketplace.BaseURL = v
	}
	if v := os.Getenv("SESSION_DRIVER"); v != "" {
		cfg.Session.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Session.JWTSecret = v
	}
	if v := os.Getenv("ADMINCTL_SESSION_FILE"); v != "" {
		cfg.Session.File = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if v, err := readIntEnv("REDIS_DB"); err != nil {
		return fmt.Errorf("parse REDIS_DB: %w", err)
	} else if v != nil {
		cfg.Redis.DB = *v
	}
	if v, err := readIntEnv("DEFAULT_PER_PAGE"); err != nil {
		return fmt.Errorf("parse DEFAULT_PER_PAGE: %w", err)
	} else if v != nil {
		cfg.Moderation.DefaultPerPage = *v
	}

	durations := []struct {
		name string
		unit time.Duration
		dst  *time.Duration
	}{
		{"MARKETPLACE_TIMEOUT_SECONDS", time.Second, &cfg.Marketplace.Timeout},
		{"SESSION_TTL_MINUTES", time.Minute, &cfg.Session.TTL},
		{"BOARD_IDLE_TTL_MINUTES", time.Minute, &cfg.Moderation.BoardIdleTTL},
		{"BOARD_CLEANUP_SECONDS", time.Second, &cfg.Moderation.CleanupInterval},
	}
	for _, d := range durations {
		v, err := readIntEnv(d.name)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.name, err)
		}
		if v != nil {
			*d.dst = time.Duration(*v) * d.unit
		}
	}
	return nil
}

// Validate checks the settings shared by the server and adminctl.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Marketplace.BaseURL) == "" {
		return fmt.Errorf("marketplace base url is required")
	}
	if c.Marketplace.Timeout <= 0 {
		return fmt.Errorf("marketplace timeout must be positive")
	}
	switch c.Moderation.DefaultPerPage {
	case 5, 10, 20, 50:
	default:
		return fmt.Errorf("default page size must be one of 5, 10, 20, 50")
	}
	return nil
}

// ValidateServer adds the checks only the HTTP server needs.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Server.Address) == "" {
		return fmt.Errorf("server address is required")
	}
	if c.Session.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.Session.Driver {
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis session driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown session driver %q", c.Session.Driver)
	}
	if c.Session.TTL <= 0 || c.Moderation.BoardIdleTTL <= 0 || c.Moderation.CleanupInterval <= 0 {
		return fmt.Errorf("session ttl, board idle ttl and cleanup interval must be positive")
	}
	return nil
}

func readIntEnv(name string) (*int, error) {
	val := os.Getenv(name)
	if val == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
