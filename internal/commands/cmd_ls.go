package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/hay-kot/favs/internal/printer"
	"github.com/hay-kot/favs/internal/styles"
	"github.com/urfave/cli/v3"
)

type LsCmd struct {
	flags *Flags

	// Command-specific flags
	match  string
	asJSON bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List favorite tables",
		UsageText: "favs ls [--match <glob>] [--json]",
		Description: `Lists favorite tables, most recently added first.

The list is first trimmed to max_favorites, so lowering the limit takes effect
on the next listing. --match filters on db.table with glob syntax, for example
'shop.*' or '*.users'.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "only show tables whose db.table matches the glob",
				Destination: &cmd.match,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the list as JSON",
				Destination: &cmd.asJSON,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.match != "" && !doublestar.ValidatePattern(cmd.match) {
		return fmt.Errorf("invalid --match pattern %q", cmd.match)
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

	items = filterItems(items, cmd.match)

	out := c.Root().Writer

	if cmd.asJSON {
		data, err := favorite.Encode(items)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if len(items) == 0 {
		p.Infof("There are no favorite tables.")
		return nil
	}

	_, _ = fmt.Fprintln(out, styles.TitleStyle.Render(printer.Star+" Favorite tables")+" "+
		styles.SubtleStyle.Render("("+cmd.flags.Config.Server+")"))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tDATABASE\tTABLE")

	for i, it := range items {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, it.Database, it.Table)
	}

	return w.Flush()
}

// filterItems keeps the items whose db.table matches pattern. An empty
// pattern keeps everything.
func filterItems(items []favorite.Item, pattern string) []favorite.Item {
	if pattern == "" {
		return items
	}

	out := make([]favorite.Item, 0, len(items))
	for _, it := range items {
		if ok, _ := doublestar.Match(pattern, it.Path()); ok {
			out = append(out, it)
		}
	}
	return out
}
