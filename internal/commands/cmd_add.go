package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/hay-kot/favs/internal/printer"
	"github.com/urfave/cli/v3"
)

type AddCmd struct {
	flags *Flags
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags) *AddCmd {
	return &AddCmd{flags: flags}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Mark a table as favorite",
		UsageText: "favs add <db> <table> | favs add <db>.<table>",
		Description: `Puts the table at the top of the favorites list.

Adding a table that is already a favorite moves it to the top. When the list
is full the least recently added table is dropped.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	item, err := parseTarget(c.Args().Slice())
	if err != nil {
		return err
	}

	list, err := cmd.flags.Service.Open(ctx, cmd.flags.Session)
	if err != nil {
		return fmt.Errorf("open favorites: %w", err)
	}

	if err := list.Add(ctx, item.Database, item.Table); err != nil {
		if errors.Is(err, favorite.ErrSave) {
			p.Infof("%s is a favorite for this session only", item)
		}
		return err
	}

	p.Successf("Added %s", item)
	if !cmd.flags.Service.Persistent() {
		p.Infof("Storage is not configured, favorites last until the session ends")
	}
	return nil
}
