package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"webshotter/capture"
	"webshotter/storage"
)

var flagCSV string

var runCmd = &cobra.Command{
	Use:   "run [address ...]",
	Short: "Capture a batch of addresses and bundle the screenshots",
	Example: `  webshotter run google.com streamlit.io github.com
  webshotter run --csv domains.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addrs, err := collectAddresses(args)
		if err != nil {
			return err
		}
		if len(addrs) == 0 {
			return errors.New("no addresses given; pass them as arguments or via --csv")
		}

		dirs, err := storage.NewBatchDirs(cfg.ScreenshotDir, cfg.ArchiveDir)
		if err != nil {
			return err
		}
		// A fresh run never aggregates leftovers from the previous one.
		if err := dirs.Flush(); err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		engine := capture.NewBrowserEngine(cfg, dirs, logger)
		coord := capture.NewCoordinator(engine, cfg.Workers, capture.NewMetrics(), logger)
		agg := capture.NewAggregator(dirs, logger)

		run, err := coord.Run(context.Background(), addrs, func(ev capture.ProgressEvent) {
			agg.Append(ev.Outcome)
			o := ev.Outcome
			if o.Status == capture.Success {
				fmt.Printf("[%d/%d] %s %s -> %s\n", ev.Completed, ev.Total, green("ok"), o.Address, o.ArtifactPath)
			} else {
				fmt.Printf("[%d/%d] %s %s: %s\n", ev.Completed, ev.Total, red("error"), o.Address, o.ErrorSummary)
			}
		})
		if err != nil {
			return err
		}

		failures := 0
		for _, rec := range run.Records {
			if rec.Status == capture.Failure {
				failures++
			}
		}
		fmt.Printf("\n%d captured, %d failed out of %d\n", run.Completed-failures, failures, run.Submitted)

		archive, err := agg.Archive()
		switch {
		case errors.Is(err, storage.ErrNoArtifacts):
			fmt.Fprintln(os.Stderr, "warning: no screenshots were successfully generated, skipping archive")
		case err != nil:
			return err
		default:
			fmt.Printf("archive: %s\n", archive)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&flagCSV, "csv", "", "read addresses from the \"name\" column of a CSV file")
}

func collectAddresses(args []string) ([]capture.Address, error) {
	if flagCSV != "" {
		f, err := os.Open(flagCSV)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		addrs, truncated, err := capture.ParseCSV(f, cfg.MaxBatchSize)
		if err != nil {
			return nil, err
		}
		if truncated {
			fmt.Fprintf(os.Stderr, "warning: more than %d addresses, only the first %d will be processed\n",
				cfg.MaxBatchSize, cfg.MaxBatchSize)
		}
		return addrs, nil
	}

	addrs, truncated := capture.ParseList(strings.Join(args, "\n"), cfg.MaxBatchSize)
	if truncated {
		fmt.Fprintf(os.Stderr, "warning: more than %d addresses, only the first %d will be processed\n",
			cfg.MaxBatchSize, cfg.MaxBatchSize)
	}
	return addrs, nil
}
