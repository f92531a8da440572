package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/hay-kot/favs/internal/printer"
	"github.com/hay-kot/favs/internal/styles"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

type PickCmd struct {
	flags *Flags

	// Command-specific flags
	asJSON bool
}

// NewPickCmd creates a new pick command
func NewPickCmd(flags *Flags) *PickCmd {
	return &PickCmd{flags: flags}
}

// Register adds the pick command to the application
func (cmd *PickCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pick",
		Usage:     "Choose a favorite table interactively",
		UsageText: "favs pick [--json]",
		Description: `Opens a selector over the favorite tables and prints the chosen one.

Output is ` + "`db`.`table`" + ` by default, or {"db":...,"table":...} with --json.
Only the chosen table is written to stdout, so the command can be used in
command substitution.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the chosen table as JSON",
				Destination: &cmd.asJSON,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PickCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("pick needs an interactive terminal, use 'favs ls' instead")
	}

	list, err := cmd.flags.Service.Open(ctx, cmd.flags.Session)
	if err != nil {
		return fmt.Errorf("open favorites: %w", err)
	}

	items, err := list.Items(ctx)
	if err != nil {
		var favErr *favorite.Error
		if !errors.As(err, &favErr) {
			return fmt.Errorf("list favorites: %w", err)
		}
		p.Warning(err)
	}

	if len(items) == 0 {
		p.Infof("There are no favorite tables.")
		return nil
	}

	var choice int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("(Favorite tables) ...").
			Options(pickOptions(items)...).
			Value(&choice),
	)).WithTheme(styles.FormTheme()).WithOutput(os.Stderr)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	return writeChoice(c.Root().Writer, items[choice], cmd.asJSON)
}

func pickOptions(items []favorite.Item) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(items))
	for i, it := range items {
		opts = append(opts, huh.NewOption(it.String(), i))
	}
	return opts
}

func writeChoice(w io.Writer, item favorite.Item, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, item.String())
		return err
	}

	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
