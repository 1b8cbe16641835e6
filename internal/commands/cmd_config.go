package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/core/config"
	"github.com/colonyops/habit/internal/core/styles"
	"github.com/colonyops/habit/pkg/iojson"
)

type ConfigCmd struct {
	flags  *Flags
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command and its subcommands to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Write the default configuration file",
				UsageText: "habit config init",
				Description: `Writes a configuration file with placeholder credentials if none exists.
Fill in user_id and api_key from https://habitica.com/user/settings/api.`,
				Action: cmd.runInit,
			},
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "habit config validate [options]",
				Description: "Validates the configuration: credentials, categories, colors, timezone, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runInit(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer
	cfg := cmd.flags.Config

	switch {
	case cfg.Source == config.SourceEnv:
		_, _ = fmt.Fprintln(out, "Configuration is read from the environment; no file written.")
	case cfg.Created:
		_, _ = fmt.Fprintf(out, "Wrote %s\n", cfg.Source)
		_, _ = fmt.Fprintln(out, "Set user_id and api_key from https://habitica.com/user/settings/api")
	default:
		_, _ = fmt.Fprintf(out, "Config already exists at %s\n", cfg.Source)
	}
	return nil
}

type validationReport struct {
	Valid    bool                       `json:"valid"`
	Errors   []string                   `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	report := validationReport{
		Errors:   validationErrors(cfg.ValidateDeep(cmd.flags.ConfigPath)),
		Warnings: cfg.Warnings(),
	}
	report.Valid = len(report.Errors) == 0

	out := c.Root().Writer
	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, report); err != nil {
			return err
		}
	} else {
		writeReport(out, report)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

// validationErrors flattens field errors into "field: message" lines.
func validationErrors(err error) []string {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		lines = append(lines, fmt.Sprintf("%s: %s", fe.Field, fe.Err))
	}
	return lines
}

func writeReport(w io.Writer, report validationReport) {
	for _, warn := range report.Warnings {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.NoticeStyle.Render("warn"), warn.Category, warn.Message)
		if warn.Item != "" {
			_, _ = fmt.Fprintf(w, "  Item: %s\n", warn.Item)
		}
	}

	for _, line := range report.Errors {
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.OverdueStyle.Render("error"), line)
	}

	if report.Valid {
		_, _ = fmt.Fprintln(w, "Configuration is valid")
		return
	}
	_, _ = fmt.Fprintf(w, "%d error(s) found\n", len(report.Errors))
}
