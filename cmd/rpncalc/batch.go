package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/signal"
	"syscall"

	"github.com/lemonberrylabs/rpncalc/pkg/batch"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Evaluate the expressions listed in YAML suite files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().BoolP("watch", "w", false, "Rerun a suite whenever its file changes")
}

func runBatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		log.Printf("Watching %d suite file(s), press Ctrl-C to stop", len(args))
		return batch.Watch(ctx, args, func(path string) {
			if _, err := runSuite(out, path); err != nil {
				log.Printf("Error: %v", err)
			}
		})
	}

	failed := 0
	for _, path := range args {
		f, err := runSuite(out, path)
		if err != nil {
			return err
		}
		failed += f
	}
	if failed > 0 {
		return fmt.Errorf("%d case(s) failed", failed)
	}
	return nil
}

// runSuite loads, runs and reports one suite, returning the failure count.
func runSuite(out io.Writer, path string) (int, error) {
	suite, err := batch.Load(path)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", path, err)
	}
	outcomes := suite.Run()
	fmt.Fprintf(out, "== %s\n", path)
	if err := batch.Report(out, outcomes); err != nil {
		return 0, err
	}
	_, failed := batch.Summary(outcomes)
	return failed, nil
}
