package main

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lyra/internal/shared"
	"github.com/desertthunder/lyra/internal/tasks"
	"github.com/desertthunder/lyra/internal/ui"
	"github.com/urfave/cli/v3"
)

// Run executes the full pipeline: join lyric folders with catalog CSVs, then
// load the processed tree into the database.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	artists := cmd.StringSlice("artist")

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	joiner := tasks.NewJoinEngine(config, r.logger)
	loader := tasks.NewLoadEngine(db, config, r.logger)

	items, err := joiner.DiscoverWork(artists)
	if err != nil {
		return fmt.Errorf("failed to discover albums: %w", err)
	}

	if cmd.Bool("tui") {
		return r.runTUI(ctx, config, joiner, loader, items, artists)
	}

	prog := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		r.logProgress(prog)
		close(done)
	}()

	joinReport, loadReport, err := runPipeline(ctx, prog, joiner, loader, items, artists)
	close(prog)
	<-done
	if err != nil {
		return fmt.Errorf("pipeline aborted: %w", err)
	}

	r.printJoinReport(joinReport)
	r.printLoadReport(loadReport)
	return nil
}

// runTUI drives the pipeline behind a terminal progress view. Logs move to a
// file so they do not fight the renderer for the terminal.
func (r *Runner) runTUI(ctx context.Context, config *shared.Config, joiner *tasks.JoinEngine, loader *tasks.LoadEngine, items []tasks.WorkItem, artists []string) error {
	fileLogger, err := shared.NewFileLogger(filepath.Join(config.Paths.LogsDir, "lyra-tui.log"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	joiner.SetLogger(fileLogger)
	loader.SetLogger(fileLogger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})

	var (
		joinReport *tasks.JoinReport
		loadReport *tasks.LoadReport
		runErr     error
	)
	go func() {
		defer close(done)
		defer close(prog)
		joinReport, loadReport, runErr = runPipeline(ctx, prog, joiner, loader, items, artists)
	}()

	model := ui.NewModel("lyra pipeline", prog, cancel)
	_, uiErr := tea.NewProgram(model).Run()

	// An early quit returns before the pipeline goroutine has assigned its
	// results; cancel and wait for it to unwind before reading them.
	cancel()
	<-done

	if uiErr != nil {
		return fmt.Errorf("error running TUI: %w", uiErr)
	}
	if runErr != nil {
		return fmt.Errorf("pipeline aborted: %w", runErr)
	}
	r.printJoinReport(joinReport)
	r.printLoadReport(loadReport)
	return nil
}

// runPipeline joins then loads, sharing one progress stream.
func runPipeline(ctx context.Context, prog chan<- tasks.ProgressUpdate, joiner *tasks.JoinEngine, loader *tasks.LoadEngine, items []tasks.WorkItem, artists []string) (*tasks.JoinReport, *tasks.LoadReport, error) {
	joinReport, err := joiner.JoinAlbums(ctx, prog, items)
	if err != nil {
		return joinReport, nil, err
	}
	loadReport, err := loader.LoadArtists(ctx, prog, artists)
	if err != nil {
		return joinReport, loadReport, err
	}
	return joinReport, loadReport, nil
}
