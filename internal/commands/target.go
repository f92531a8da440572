package commands

import (
	"fmt"
	"strings"

	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/hay-kot/favs/internal/core/validate"
)

// parseTarget reads a table reference from command arguments. Accepted
// forms are "db table", "db.table" and "`db`.`table`".
func parseTarget(args []string) (favorite.Item, error) {
	switch len(args) {
	case 2:
		return checkTarget(args[0], args[1])
	case 1:
		ref := args[0]
		if strings.HasPrefix(ref, "`") {
			if db, table, ok := strings.Cut(strings.Trim(ref, "`"), "`.`"); ok {
				return checkTarget(db, table)
			}
		}
		db, table, ok := strings.Cut(ref, ".")
		if !ok {
			return favorite.Item{}, fmt.Errorf("expected db.table, got %q", ref)
		}
		return checkTarget(db, table)
	default:
		return favorite.Item{}, fmt.Errorf("expected <db> <table> or <db>.<table>")
	}
}

func checkTarget(db, table string) (favorite.Item, error) {
	if err := validate.Name("database", db); err != nil {
		return favorite.Item{}, err
	}
	if err := validate.Name("table", table); err != nil {
		return favorite.Item{}, err
	}
	return favorite.NewItem(db, table), nil
}
