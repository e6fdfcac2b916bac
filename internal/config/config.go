// Package config provides configuration structures and loading for discbot.
package config

// Config represents the complete application configuration.
type Config struct {
	Bot     BotConfig     `yaml:"bot" mapstructure:"bot"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// BotConfig holds the chat-facing settings used when building replies.
type BotConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`                   // character the bot runs on, target of /tell links
	MaxBlobSize int    `yaml:"max_blob_size" mapstructure:"max_blob_size"` // bytes per collapsible page
}

// StoreConfig selects and configures the reference data store.
type StoreConfig struct {
	Driver string         `yaml:"driver" mapstructure:"driver"` // sqlite or mysql
	Path   string         `yaml:"path" mapstructure:"path"`     // sqlite database file, ":memory:" allowed
	MySQL  DatabaseConfig `yaml:"mysql" mapstructure:"mysql"`
	Seed   bool           `yaml:"seed" mapstructure:"seed"` // import embedded datasets on startup
}

// DatabaseConfig represents a MySQL database connection configuration.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// MinBlobSize is the smallest accepted bot.max_blob_size. It leaves room for a
// page header and one disambiguation entry, which embeds a full item reference.
const MinBlobSize = 1024

// Store drivers understood by the database manager.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Bot: BotConfig{
			Name:        "Discbot",
			MaxBlobSize: 7500,
		},
		Store: StoreConfig{
			Driver: DriverSQLite,
			Path:   "discbot.db",
			MySQL: DatabaseConfig{
				Port:               3306,
				TLS:                "preferred",
				MaxConnections:     10,
				MaxIdleConnections: 5,
			},
			Seed: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat, storePath, botName string) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if storePath != "" {
		c.Store.Path = storePath
	}
	if botName != "" {
		c.Bot.Name = botName
	}
}
