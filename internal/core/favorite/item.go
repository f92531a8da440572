// Package favorite defines favorite table domain types, list operations and
// the interfaces of the stores a favorites list is synchronized with.
package favorite

import "fmt"

// Item identifies a table a user marked as favorite.
type Item struct {
	Database string `json:"db"`
	Table    string `json:"table"`
}

// NewItem returns the item for db and table.
func NewItem(db, table string) Item {
	return Item{Database: db, Table: table}
}

// String returns the item as a backquoted `db`.`table` reference.
func (i Item) String() string {
	return fmt.Sprintf("`%s`.`%s`", i.Database, i.Table)
}

// Path returns the item as db.table, used for glob matching.
func (i Item) Path() string {
	return i.Database + "." + i.Table
}

// Promote puts item at the front of items and drops later duplicates.
// The input slice is not modified.
func Promote(items []Item, item Item) []Item {
	out := make([]Item, 0, len(items)+1)
	out = append(out, item)
	out = append(out, items...)
	return Dedup(out)
}

// Dedup removes duplicate items keeping the first occurrence of each.
// Relative order of the kept items is preserved.
func Dedup(items []Item) []Item {
	seen := make(map[Item]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Without returns items with every occurrence of item removed.
func Without(items []Item, item Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it != item {
			out = append(out, it)
		}
	}
	return out
}

// Trim drops items from the tail until at most limit remain. A negative limit
// is treated as zero. Reports whether anything was dropped.
func Trim(items []Item, limit int) ([]Item, bool) {
	bound := max(limit, 0)
	if len(items) <= bound {
		return items, false
	}
	return items[:bound:bound], true
}
