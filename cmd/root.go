package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BugBounty-MockingBird/bugbounty-ksp-api-client/config"
	"github.com/BugBounty-MockingBird/bugbounty-ksp-api-client/ksp"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *ksp.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ksp",
	Short: "Publish and manage articles on the BugBountyKE-KSP platform",
	Long: `ksp is a CLI for the BugBountyKE-KSP publishing platform.

It publishes markdown articles (including referenced images), fetches
article details, and deletes published articles using your API key.`,
	SilenceUsage: true,
}

// SetVersion sets the version information for the CLI
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration and the API client. Used
// as PreRunE by commands that talk to the platform; keygen works
// without it.
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create the API client; this also verifies the key
	opts := []ksp.Option{ksp.WithBaseURL(cfg.KSP.URL)}
	if !cfg.KSP.VerifySSL {
		opts = append(opts, ksp.WithoutTLSVerify())
	}

	client, err = ksp.NewClient(cfg.KSP.APIKey, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create KSP client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; only color a real terminal
	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
