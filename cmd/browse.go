// ABOUTME: Browse command launching the interactive console
// ABOUTME: Logs go to a file in the data dir while the TUI owns the terminal

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/academia-console/internal/app"
	"github.com/markalston/academia-console/internal/config"
	"github.com/markalston/academia-console/internal/logger"
	"github.com/markalston/academia-console/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive console",
	Long: `Open the interactive console.

Starts at the login form unless a stored session is still valid. Logs are
written to academia.log in the data directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		exit(runBrowse())
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// runBrowse starts the TUI and returns exit code
func runBrowse() int {
	cfg, err := config.Load(v)
	if err != nil {
		return printError(os.Stderr, err)
	}

	f, err := logger.OpenFile(cfg.DataDir)
	if err != nil {
		return printError(os.Stderr, err)
	}
	defer f.Close()

	l, flush := logger.Init(logger.Options{
		Level:        cfg.LogLevel,
		Format:       cfg.LogFormat,
		Writer:       f,
		RollbarToken: cfg.RollbarToken,
		Environment:  cfg.Environment,
		CodeVersion:  Version,
	})
	defer flush()

	a, err := app.New(cfg, app.WithLogger(l))
	if err != nil {
		return printError(os.Stderr, err)
	}
	defer a.Close()

	l.Info("Console started", "api", cfg.APIURL)
	if err := tui.Run(a); err != nil {
		l.Error("Console failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}
