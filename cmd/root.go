// ABOUTME: Root command for the academia console CLI
// ABOUTME: Handles global flags, configuration loading and logger setup

package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/markalston/academia-console/internal/config"
	"github.com/markalston/academia-console/internal/logger"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var (
	v          *viper.Viper
	jsonOutput bool
	flushLogs  = func() {}
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "academia",
	Short: "Admin console for the Academia platform",
	Long: `academia is a command-line console for the Academia teaching platform.

It signs in against the backend, keeps the session on disk and lets you
browse and manage students, professors, classes, coursework and payments.

Environment Variables:
  ACADEMIA_API_URL        Backend API URL (default: http://localhost:8080)
  ACADEMIA_TIMEOUT        Request timeout (default: 30s)
  ACADEMIA_DATA_DIR       Where the session is stored
  ACADEMIA_LOG_LEVEL      debug, info, warn, error (default: info)
  ACADEMIA_LOG_FORMAT     text or json (default: text)
  ACADEMIA_ALL_PROXY      ssh+socks5://user@jumpbox:22?private-key=/path
  ACADEMIA_ROLLBAR_TOKEN  Report error logs to Rollbar when set`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			return err
		}
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		l, flush := logger.Init(logger.Options{
			Level:        cfg.LogLevel,
			Format:       cfg.LogFormat,
			RollbarToken: cfg.RollbarToken,
			Environment:  cfg.Environment,
			CodeVersion:  Version,
		})
		slog.SetDefault(l)
		flushLogs = flush
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		flushLogs()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	v = config.New()

	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "Backend API URL (overrides ACADEMIA_API_URL)")
	flags.Duration("timeout", config.DefaultTimeout, "Request timeout (overrides ACADEMIA_TIMEOUT)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text, json")
	flags.BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")

	_ = v.BindPFlag(config.KeyAPIURL, flags.Lookup("api-url"))
	_ = v.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))
	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	rootCmd.Version = Version
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
