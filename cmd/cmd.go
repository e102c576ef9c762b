// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// joinCommand merges lyric folders with transformed catalog CSVs
func joinCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "join",
		Aliases: []string{"merge"},
		Usage:   "Merge lyric folders with transformed track CSVs into final album files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringSliceFlag{
				Name:    "artist",
				Aliases: []string{"a"},
				Usage:   "Restrict the run to these artist folders (repeatable)",
			},
		},
		Action: r.Join,
	}
}

// loadCommand loads processed album files into the database
func loadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "Load processed artist metadata, albums, tracks and lyrics into SQLite",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringSliceFlag{
				Name:    "artist",
				Aliases: []string{"a"},
				Usage:   "Restrict the run to these artist folders (repeatable)",
			},
		},
		Action: r.Load,
	}
}

// runCommand executes join and load back to back
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the full pipeline: join lyrics, then load the results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringSliceFlag{
				Name:    "artist",
				Aliases: []string{"a"},
				Usage:   "Restrict the run to these artist folders (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Render progress in a terminal UI instead of log lines",
			},
		},
		Action: r.Run,
	}
}
