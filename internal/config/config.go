package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Word set sources
const (
	SourceEmbedded = "embedded"
	SourcePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Env            string
	HTTPAddr       string
	WordSet        string
	Direction      string
	WordSetSource  string
	SessionIdleTTL time.Duration
	BotToken       string
	MigrationsPath string
	Database       DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from .env, an optional config/config.yaml and
// environment variables, in increasing order of precedence
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	v := newViper()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	cfg := &Config{
		Env:            v.GetString("app.env"),
		HTTPAddr:       v.GetString("http.addr"),
		WordSet:        v.GetString("wordset"),
		Direction:      v.GetString("direction"),
		WordSetSource:  v.GetString("wordset_source"),
		SessionIdleTTL: v.GetDuration("session.idle_ttl"),
		BotToken:       v.GetString("bot.token"),
		MigrationsPath: v.GetString("migrations.path"),
		Database: DatabaseConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			Name:     v.GetString("db.name"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("app.env", "local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("wordset", "japanese")
	v.SetDefault("direction", "first")
	v.SetDefault("wordset_source", SourceEmbedded)
	v.SetDefault("session.idle_ttl", "2h")
	v.SetDefault("migrations.path", "file://migrations")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.name", "vocabquiz")
	v.SetDefault("db.user", "vocabquiz")

	// db.host -> DB_HOST
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func (c *Config) validate() error {
	if c.WordSet == "" {
		return fmt.Errorf("WORDSET is required")
	}
	if c.Direction != "first" && c.Direction != "second" {
		return fmt.Errorf("DIRECTION must be 'first' or 'second', got %q", c.Direction)
	}
	if c.SessionIdleTTL <= 0 {
		return fmt.Errorf("SESSION_IDLE_TTL must be positive")
	}

	switch c.WordSetSource {
	case SourceEmbedded:
	case SourcePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres word set source")
		}
	default:
		return fmt.Errorf("WORDSET_SOURCE must be %q or %q, got %q", SourceEmbedded, SourcePostgres, c.WordSetSource)
	}

	return nil
}

// IsProduction reports whether the app runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TelegramEnabled reports whether a bot token is configured
func (c *Config) TelegramEnabled() bool {
	return c.BotToken != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
