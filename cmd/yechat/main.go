// Package main provides the yechat CLI application entry point.
// yechat is a single-user web chat that role-plays a persona over a hosted
// LLM API and persists conversation history per browser session.
package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"yechat/internal/config"
	"yechat/internal/history"
	"yechat/internal/llm"
	"yechat/internal/logger"
	"yechat/internal/persona"
	"yechat/internal/server"
	"yechat/internal/version"
	"yechat/pkg/chattypes"
)

var (
	logLevel string
	logFile  string
	addr     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yechat",
	Short: "yechat - persona chat over a hosted LLM",
	Long: `yechat serves a single-user web chat that role-plays a persona (Ye by
default), streams replies from a hosted LLM API, and persists each browser
session's conversation to disk.`,
	Run: runServe, // Default behavior is to run the web server
}

// serveCmd represents the serve command (explicit version of default behavior)
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat web server",
	Long:  `Start the yechat web server on the configured listen address.`,
	Run:   runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")

	// Bind flags to viper
	if err := viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-file flag: %v\n", err)
		os.Exit(1)
	}

	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides YECHAT_ADDR)")
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides YECHAT_ADDR)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(transcriptCmd)

	// Configure logger before any command execution
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Configure logger with CLI flags
	if err := logger.Configure(logLevel, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runServe(_ *cobra.Command, _ []string) {
	settings := config.Load()
	if err := settings.Validate(); err != nil {
		logger.Fatal("Invalid configuration", "error", err)
	}

	p, err := loadPersona(settings)
	if err != nil {
		logger.Fatal("Failed to load persona", "error", err)
	}

	generator, err := llm.New(string(settings.Provider), settings.APIKey())
	if err != nil {
		logger.Fatal("Failed to create generator", "error", err)
	}

	store := buildStore(settings, p.Greeting)

	logger.Info("Starting yechat", "version", version.GetVersion(),
		"provider", generator.Name(), "model", p.Model, "format", string(settings.HistoryFormat))

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(store, generator, p)
	if err := srv.Run(listenAddr(settings)); err != nil {
		logger.Fatal("Server exited", "error", err)
	}
}

// loadPersona assembles the active persona: built-in defaults, then the
// optional YAML override file, then explicit environment overrides. The
// environment wins so one deployment variable can retune a shared persona
// file.
func loadPersona(settings config.Settings) (chattypes.Persona, error) {
	p, err := persona.Load(settings.PersonaFile)
	if err != nil {
		return chattypes.Persona{}, err
	}

	if settings.Model != "" {
		p.Model = settings.Model
	}
	if settings.Safety != "" {
		p.Safety = settings.Safety
	}

	if err := persona.Validate(p); err != nil {
		return chattypes.Persona{}, err
	}
	return p, nil
}

// buildStore returns the history store for the configured encoding.
func buildStore(settings config.Settings, greeting string) history.Store {
	switch settings.HistoryFormat {
	case config.FormatText:
		return history.NewTextStore(settings.DataDir, greeting)
	case config.FormatNone:
		return history.NewMemStore(greeting)
	default:
		return history.NewJSONStore(settings.DataDir, greeting)
	}
}

// listenAddr prefers the --addr flag over the environment setting.
func listenAddr(settings config.Settings) string {
	if addr != "" {
		return addr
	}
	return settings.Addr
}
