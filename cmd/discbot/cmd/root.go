package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	storePath string
	botName   string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "discbot",
	Short: "Instruction disc lookup for Anarchy Online chat bots",
	Long: `Discbot answers the "disc" chat command: given the name of an
instruction disc or an item reference to one, it tells which nano program
the disc turns into.

Features:
  - Name search and item-reference lookup
  - Clickable disambiguation menus, paginated like the in-game client
  - Versioned reference datasets for SQLite or MySQL
  - Interactive shell that dispatches chat commands locally`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "discbot.yaml",
		"Path to configuration file (defaults are used when it does not exist)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Store and bot overrides
	rootCmd.PersistentFlags().StringVar(&storePath, "store-path", "",
		"Override the sqlite database file")
	rootCmd.PersistentFlags().StringVar(&botName, "bot-name", "",
		"Override the bot character name used in /tell links")

	// Output
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	StorePath string
	BotName   string
	NoColor   bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		StorePath: storePath,
		BotName:   botName,
		NoColor:   noColor,
	}
}
