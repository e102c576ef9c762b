package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lyra/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Join merges lyric folders with transformed track CSVs and writes the final
// album files to the processed tree.
func (r *Runner) Join(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	engine := tasks.NewJoinEngine(config, r.logger)
	items, err := engine.DiscoverWork(cmd.StringSlice("artist"))
	if err != nil {
		return fmt.Errorf("failed to discover albums: %w", err)
	}
	if len(items) == 0 {
		r.writePlain("No albums to join\n")
		return nil
	}

	prog := make(chan tasks.ProgressUpdate, len(items)*4)
	done := make(chan struct{})
	go func() {
		r.logProgress(prog)
		close(done)
	}()

	report, err := engine.JoinAlbums(ctx, prog, items)
	close(prog)
	<-done
	if err != nil {
		return fmt.Errorf("join run aborted: %w", err)
	}

	r.printJoinReport(report)
	return nil
}

func (r *Runner) printJoinReport(report *tasks.JoinReport) {
	if report == nil {
		return
	}
	r.writePlainHeader("Join Summary")
	r.writePlain("Albums joined:  %d\n", len(report.Succeeded))
	r.writePlain("Albums failed:  %d\n", len(report.Failures))
	r.writePlain("Tracks matched: %d\n", report.Matched)
	r.writePlain("Tracks missing: %d\n", report.Missing)

	if len(report.Failures) > 0 {
		r.writePlainln("Failures:")
		for _, f := range report.Failures {
			r.writePlain("  %s\n", f.String())
		}
	}
}
