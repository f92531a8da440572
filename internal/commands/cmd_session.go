package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hay-kot/favs/internal/printer"
	"github.com/urfave/cli/v3"
)

type SessionCmd struct {
	flags *Flags
}

// NewSessionCmd creates a new session command
func NewSessionCmd(flags *Flags) *SessionCmd {
	return &SessionCmd{flags: flags}
}

// Register adds the session command to the application
func (cmd *SessionCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "session",
		Usage: "Start or end a favorites session",
		Description: `Favorites are cached per session. The first command in a session loads
the list from storage; later commands work on the cached copy.

Select a session with --session or FAVS_SESSION.`,
		Commands: []*cli.Command{
			{
				Name:      "new",
				Usage:     "Print a new session id",
				UsageText: "export FAVS_SESSION=$(favs session new)",
				Action:    cmd.runNew,
			},
			{
				Name:      "end",
				Usage:     "Drop the cached favorites of the current session",
				UsageText: "favs session end",
				Action:    cmd.runEnd,
			},
		},
	})

	return app
}

func (cmd *SessionCmd) runNew(ctx context.Context, c *cli.Command) error {
	_, err := fmt.Fprintln(c.Root().Writer, uuid.NewString())
	return err
}

func (cmd *SessionCmd) runEnd(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	n, err := cmd.flags.Service.End(ctx, cmd.flags.Session)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	if n == 0 {
		p.Infof("Session %s has no cached favorites", cmd.flags.Session)
		return nil
	}

	p.Successf("Ended session %s", cmd.flags.Session)
	return nil
}
