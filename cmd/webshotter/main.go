// Command webshotter captures full-page screenshots for a batch of
// addresses, either as a one-shot CLI run or behind a small web UI.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"webshotter/config"
	"webshotter/log"
)

var (
	cfg    = config.DefaultConfig()
	logger *log.Logger

	flagNavTimeoutSec int
	flagVerbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "webshotter",
	Short: "Batch full-page website screenshots via headless Chrome",
	Long: `webshotter drives one headless Chrome process to capture full-page
screenshots for a batch of addresses, bundling the results into a single
zip. Each address gets an isolated browsing context; failures on one
address never affect the rest of the batch.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg.NavigationTimeout = time.Duration(flagNavTimeoutSec) * time.Second
		cfg.Verbose = flagVerbose
		logger = log.New(cfg.Verbose)
		return cfg.Validate()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&cfg.Headless, "headless", cfg.Headless, "run Chrome headless")
	pf.BoolVar(&cfg.DisableSandbox, "no-sandbox", cfg.DisableSandbox, "pass --no-sandbox to Chrome")
	pf.StringVar(&cfg.ExecutablePath, "chrome", "", "path to the Chrome binary (default: discover)")
	pf.IntVar(&flagNavTimeoutSec, "timeout", int(cfg.NavigationTimeout/time.Second), "per-address navigation timeout (seconds)")
	pf.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent capture workers")
	pf.IntVar(&cfg.MaxBatchSize, "max-batch", cfg.MaxBatchSize, "maximum addresses per batch")
	pf.StringVar(&cfg.ScreenshotDir, "screenshot-dir", cfg.ScreenshotDir, "directory for captured images")
	pf.StringVar(&cfg.ArchiveDir, "archive-dir", cfg.ArchiveDir, "directory for the zip bundle")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
