package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hay-kot/favs/internal/commands/doctor"
	"github.com/hay-kot/favs/internal/printer"
	"github.com/urfave/cli/v3"
)

type DoctorCmd struct {
	flags  *Flags
	format string
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Check configuration and favorites storage",
		UsageText:   "favs doctor [options]",
		Description: "Validates the configuration, checks that the storage backend is reachable and that the stored favorites of the configured user can be read.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.format != "text" && cmd.format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", cmd.format)
	}

	cfg := cmd.flags.Config
	key, _ := cfg.Storage.BackendKey()

	report := doctor.Run(ctx,
		doctor.NewConfigCheck(cfg, cmd.flags.ConfigPath),
		doctor.NewStorageCheck(cmd.flags.Backend, key, cfg.User),
	)

	if cmd.format == "json" {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(printer.Ctx(ctx), report)
	}

	if !report.Healthy {
		return cli.Exit("", 1)
	}
	return nil
}

func printReport(p *printer.Printer, report doctor.Report) {
	for _, result := range report.Checks {
		p.Section(result.Name)

		for _, f := range result.Findings {
			switch f.Status {
			case doctor.StatusPass:
				p.CheckItem(f.Label, f.Detail)
			case doctor.StatusWarn:
				p.WarnItem(f.Label, f.Detail)
			case doctor.StatusFail:
				p.FailItem(f.Label, f.Detail)
			}
		}

		p.Printf("")
	}

	sum := report.Summary
	p.Printf("Summary: %d passed, %d warnings, %d failed", sum.Passed, sum.Warned, sum.Failed)
}
