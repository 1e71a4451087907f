package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Slack   SlackConfig   `yaml:"slack"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig holds persistence storage settings.
type StorageConfig struct {
	Type           string       `yaml:"type"` // "memory", "sqlite", or "mysql"
	SkipMigrations bool         `yaml:"skip_migrations"`
	SQLite         SQLiteConfig `yaml:"sqlite"`
	MySQL          MySQLConfig  `yaml:"mysql"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"` // Database file path, use ":memory:" for in-memory
}

// MySQLConfig holds MySQL-specific settings.
type MySQLConfig struct {
	Primary   MySQLInstanceConfig `yaml:"primary"`
	Replica   MySQLReplicaConfig  `yaml:"replica"`
	Pool      MySQLPoolConfig     `yaml:"pool"`
	Timeout   time.Duration       `yaml:"timeout"`
	ParseTime bool                `yaml:"parse_time"`
	Charset   string              `yaml:"charset"`
}

// MySQLInstanceConfig holds MySQL instance connection settings.
type MySQLInstanceConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MySQLReplicaConfig holds optional read-replica settings.
type MySQLReplicaConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MySQLPoolConfig holds MySQL connection pool settings.
type MySQLPoolConfig struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// SlackConfig holds Slack integration settings.
type SlackConfig struct {
	// BotToken authorizes outbound API calls (reactions). Empty disables
	// acknowledgements; inbound webhooks still work.
	BotToken string `yaml:"bot_token"`

	// SigningSecret enables request-signature verification on webhook routes.
	SigningSecret string `yaml:"signing_secret"`

	// VerificationToken is the deprecated token checked during the
	// url_verification handshake.
	VerificationToken string `yaml:"verification_token"`

	// BotUserID and BotName seed the invocation prefixes stripped from
	// mention text ("<@UBOT> telework", "@statusbot telework").
	BotUserID string `yaml:"bot_user_id"`
	BotName   string `yaml:"bot_name"`

	// StatusChannelID restricts the passive message monitor to one channel.
	// Empty accepts messages from every channel the bot is in.
	StatusChannelID string `yaml:"status_channel_id"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from file and environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// Load from file if exists
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err == nil {
			// Expand environment variables in YAML
			expandedData := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	cfg.overrideFromEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// overrideFromEnv overrides config values from environment variables.
func (c *Config) overrideFromEnv() {
	// Server
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}

	// Slack
	if v := os.Getenv("SLACK_BOT_TOKEN"); v != "" {
		c.Slack.BotToken = v
	}
	if v := os.Getenv("SLACK_SIGNING_SECRET"); v != "" {
		c.Slack.SigningSecret = v
	}
	if v := os.Getenv("SLACK_VERIFICATION_TOKEN"); v != "" {
		c.Slack.VerificationToken = v
	}
	if v := os.Getenv("SLACK_BOT_USER_ID"); v != "" {
		c.Slack.BotUserID = v
	}
	if v := os.Getenv("SLACK_BOT_NAME"); v != "" {
		c.Slack.BotName = v
	}
	if v := os.Getenv("SLACK_STATUS_CHANNEL_ID"); v != "" {
		c.Slack.StatusChannelID = v
	}

	// Logging
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}

	// Storage
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("SKIP_MIGRATIONS"); v != "" {
		c.Storage.SkipMigrations = strings.ToLower(v) == "true"
	}
	if v := os.Getenv("SQLITE_DATABASE_PATH"); v != "" {
		c.Storage.SQLite.Path = v
	}

	// MySQL
	if v := os.Getenv("MYSQL_HOST"); v != "" {
		c.Storage.MySQL.Primary.Host = v
	}
	if v := os.Getenv("MYSQL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Storage.MySQL.Primary.Port = port
		}
	}
	if v := os.Getenv("MYSQL_DATABASE"); v != "" {
		c.Storage.MySQL.Primary.Database = v
	}
	if v := os.Getenv("MYSQL_USERNAME"); v != "" {
		c.Storage.MySQL.Primary.Username = v
	}
	if v := os.Getenv("MYSQL_PASSWORD"); v != "" {
		c.Storage.MySQL.Primary.Password = v
	}
	if v := os.Getenv("MYSQL_REPLICA_ENABLED"); v != "" {
		c.Storage.MySQL.Replica.Enabled = strings.ToLower(v) == "true"
	}
	if v := os.Getenv("MYSQL_REPLICA_HOST"); v != "" {
		c.Storage.MySQL.Replica.Host = v
	}
	if v := os.Getenv("MYSQL_REPLICA_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Storage.MySQL.Replica.Port = port
		}
	}
	if v := os.Getenv("MYSQL_REPLICA_DATABASE"); v != "" {
		c.Storage.MySQL.Replica.Database = v
	}
	if v := os.Getenv("MYSQL_REPLICA_USERNAME"); v != "" {
		c.Storage.MySQL.Replica.Username = v
	}
	if v := os.Getenv("MYSQL_REPLICA_PASSWORD"); v != "" {
		c.Storage.MySQL.Replica.Password = v
	}
}

// applyDefaults sets default values for unset config options.
func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = 5010
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}

	// Slack defaults
	if c.Slack.BotName == "" {
		c.Slack.BotName = "statusbot"
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}

	// Storage defaults
	if c.Storage.Type == "" {
		c.Storage.Type = "sqlite"
	}
	if c.Storage.SQLite.Path == "" {
		c.Storage.SQLite.Path = "./statusbot.sqlite3"
	}

	// MySQL defaults
	if c.Storage.MySQL.Pool.MaxOpenConns == 0 {
		c.Storage.MySQL.Pool.MaxOpenConns = 25
	}
	if c.Storage.MySQL.Pool.MaxIdleConns == 0 {
		c.Storage.MySQL.Pool.MaxIdleConns = 5
	}
	if c.Storage.MySQL.Pool.ConnMaxLifetime == 0 {
		c.Storage.MySQL.Pool.ConnMaxLifetime = 3 * time.Minute
	}
	if c.Storage.MySQL.Pool.ConnMaxIdleTime == 0 {
		c.Storage.MySQL.Pool.ConnMaxIdleTime = 1 * time.Minute
	}
	if c.Storage.MySQL.Timeout == 0 {
		c.Storage.MySQL.Timeout = 5 * time.Second
	}
	if !c.Storage.MySQL.ParseTime {
		c.Storage.MySQL.ParseTime = true
	}
	if c.Storage.MySQL.Charset == "" {
		c.Storage.MySQL.Charset = "utf8mb4"
	}
	if c.Storage.MySQL.Primary.Port == 0 {
		c.Storage.MySQL.Primary.Port = 3306
	}
	if c.Storage.MySQL.Replica.Port == 0 {
		c.Storage.MySQL.Replica.Port = 3306
	}
}

// validate checks that required configuration is present.
func (c *Config) validate() error {
	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format)
	}

	// Validate storage type
	validStorageTypes := map[string]bool{"memory": true, "sqlite": true, "mysql": true}
	if !validStorageTypes[strings.ToLower(c.Storage.Type)] {
		return fmt.Errorf("invalid storage type: %s (must be memory, sqlite, or mysql)", c.Storage.Type)
	}

	if strings.ToLower(c.Storage.Type) == "sqlite" && c.Storage.SQLite.Path == "" {
		return fmt.Errorf("storage.sqlite.path is required when storage type is sqlite")
	}

	if strings.ToLower(c.Storage.Type) == "mysql" {
		if c.Storage.MySQL.Primary.Host == "" {
			return fmt.Errorf("storage.mysql.primary.host is required when storage type is mysql")
		}
		if c.Storage.MySQL.Primary.Database == "" {
			return fmt.Errorf("storage.mysql.primary.database is required when storage type is mysql")
		}
		if c.Storage.MySQL.Primary.Username == "" {
			return fmt.Errorf("storage.mysql.primary.username is required when storage type is mysql")
		}

		if c.Storage.MySQL.Replica.Enabled {
			if c.Storage.MySQL.Replica.Host == "" {
				return fmt.Errorf("storage.mysql.replica.host is required when replica is enabled")
			}
			if c.Storage.MySQL.Replica.Database == "" {
				return fmt.Errorf("storage.mysql.replica.database is required when replica is enabled")
			}
			if c.Storage.MySQL.Replica.Username == "" {
				return fmt.Errorf("storage.mysql.replica.username is required when replica is enabled")
			}
		}
	}

	return nil
}

// HasBotToken returns true if outbound Slack API calls are configured.
func (c *Config) HasBotToken() bool {
	return c.Slack.BotToken != ""
}
