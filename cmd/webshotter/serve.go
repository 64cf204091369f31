package main

import (
	"github.com/spf13/cobra"

	"webshotter/capture"
	"webshotter/storage"
	"webshotter/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the batch-capture web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs, err := storage.NewBatchDirs(cfg.ScreenshotDir, cfg.ArchiveDir)
		if err != nil {
			return err
		}

		metrics := capture.NewMetrics()
		engines := func() capture.Engine {
			return capture.NewBrowserEngine(cfg, dirs, logger)
		}

		srv := web.NewServer(cfg, dirs, engines, metrics, logger)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "listen address for the web UI")
}
