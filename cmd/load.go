package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lyra/internal/shared"
	"github.com/desertthunder/lyra/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Load reads the processed tree and upserts artists, albums, tracks and
// lyrics into the database.
func (r *Runner) Load(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	engine := tasks.NewLoadEngine(db, config, r.logger)

	prog := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		r.logProgress(prog)
		close(done)
	}()

	report, err := engine.LoadArtists(ctx, prog, cmd.StringSlice("artist"))
	close(prog)
	<-done
	if err != nil {
		return fmt.Errorf("load run aborted: %w", err)
	}

	r.printLoadReport(report)
	return nil
}

func (r *Runner) printLoadReport(report *tasks.LoadReport) {
	if report == nil {
		return
	}
	r.writePlainHeader("Load Summary")
	r.writePlain("Artists loaded: %d\n", report.Artists)
	r.writePlain("Albums loaded:  %d\n", report.Albums)
	r.writePlain("Tracks loaded:  %d\n", report.Tracks)
	r.writePlain("Lyrics loaded:  %d\n", report.Lyrics)
	r.writePlain("Lyrics missing: %d\n", report.LyricsMiss)
	r.writePlain("Albums skipped: %d\n", len(report.Skipped))

	if len(report.Failures) > 0 {
		r.writePlainln("Failures:")
		for _, f := range report.Failures {
			r.writePlain("  %s\n", f.String())
		}
	}
}
