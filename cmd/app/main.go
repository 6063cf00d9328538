package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/taskline/internal"
	pkgconfig "github.com/starford/taskline/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	// Flags override the file.
	if cmd.IsSet("data") {
		cfg.Storage.Path = cmd.String("data")
	}
	if cmd.IsSet("backend") {
		cfg.Storage.Backend = cmd.String("backend")
	}
	if cmd.IsSet("watch") {
		cfg.Storage.Watch = cmd.Bool("watch")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "taskline",
		Usage:  "Line-oriented task tracker for todos, deadlines and events",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (defaults are used when it does not exist)",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the task data file",
				Sources: cli.EnvVars("TASKLINE_DATA"),
			},
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "Storage backend: file or sqlite",
				Sources: cli.EnvVars("TASKLINE_BACKEND"),
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Warn when the data file is edited while the session runs",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
