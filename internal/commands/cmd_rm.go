package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/hay-kot/favs/internal/printer"
	"github.com/urfave/cli/v3"
)

type RmCmd struct {
	flags *Flags
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags) *RmCmd {
	return &RmCmd{flags: flags}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Aliases:   []string{"remove"},
		Usage:     "Remove a table from the favorites",
		UsageText: "favs rm <db> <table> | favs rm <db>.<table>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	item, err := parseTarget(c.Args().Slice())
	if err != nil {
		return err
	}

	list, err := cmd.flags.Service.Open(ctx, cmd.flags.Session)
	if err != nil {
		return fmt.Errorf("open favorites: %w", err)
	}

	if err := list.Remove(ctx, item.Database, item.Table); err != nil {
		if errors.Is(err, favorite.ErrRemove) {
			p.Infof("%s was removed for this session only", item)
		}
		return err
	}

	p.Successf("Removed %s", item)
	return nil
}
