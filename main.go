package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/commands"
	"github.com/colonyops/habit/internal/core/config"
	"github.com/colonyops/habit/internal/core/dates"
	"github.com/colonyops/habit/internal/core/logging"
	"github.com/colonyops/habit/internal/data/cache"
	"github.com/colonyops/habit/internal/habit"
	"github.com/colonyops/habit/internal/habitica"
	"github.com/colonyops/habit/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		habitApp  = &habit.App{}
	)

	flags := &commands.Flags{}

	app := commands.NewRoot(flags, habitApp)
	app.Version = build()
	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		// Always log to a file; use explicit path or default to <datadir>/habit.log
		logFile := flags.LogFile
		if logFile == "" {
			logFile = filepath.Join(flags.DataDir, "habit.log")
		}

		logger, closer, err := logutils.New(flags.LogLevel, logFile)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger.Hook(logging.ContextHook{})
		logCloser = closer

		ctx = logging.WithRunID(ctx, uuid.NewString())
		ctx = logging.WithCommand(ctx, c.Args().First())

		cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		if cfg.Created {
			log.Info().Ctx(ctx).Str("path", cfg.Source).Msg("wrote default config")
			_, _ = fmt.Fprintf(os.Stderr, "Created %s; set user_id and api_key before use\n", cfg.Source)
		}
		flags.Config = cfg

		remote := habitica.New(cfg.APIURL, cfg.UserID, cfg.APIKey)
		resolver := dates.NewResolver(cfg.Location())

		// Populate the pre-allocated App struct (commands already hold a pointer to it)
		*habitApp = *habit.NewApp(cfg, remote, cache.New(cfg.CacheFile()), resolver)

		return ctx, nil
	}
	app.After = func(ctx context.Context, c *cli.Command) error {
		// Close log file
		if logCloser != nil {
			logCloser()
		}
		return nil
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
