package commands

import (
	"testing"

	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    favorite.Item
		wantErr string
	}{
		{name: "two args", args: []string{"shop", "users"}, want: favorite.NewItem("shop", "users")},
		{name: "dotted", args: []string{"shop.users"}, want: favorite.NewItem("shop", "users")},
		{name: "dotted table keeps rest", args: []string{"shop.users.v2"}, want: favorite.NewItem("shop", "users.v2")},
		{name: "backquoted", args: []string{"`my.db`.`users`"}, want: favorite.NewItem("my.db", "users")},
		{name: "two args with dots", args: []string{"my.db", "t.x"}, want: favorite.NewItem("my.db", "t.x")},
		{name: "no table", args: []string{"shop"}, wantErr: "expected db.table"},
		{name: "empty table", args: []string{"shop."}, wantErr: "table name is required"},
		{name: "empty db", args: []string{"", "users"}, wantErr: "database name is required"},
		{name: "backtick in db", args: []string{"a`.`b", "c"}, wantErr: "must not contain backticks"},
		{name: "backtick in table", args: []string{"shop", "us`ers"}, wantErr: "must not contain backticks"},
		{name: "no args", args: nil, wantErr: "expected <db> <table>"},
		{name: "too many", args: []string{"a", "b", "c"}, wantErr: "expected <db> <table>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTarget(tt.args)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTarget_ReadsBackItemString(t *testing.T) {
	items := []favorite.Item{
		favorite.NewItem("shop", "users"),
		favorite.NewItem("my.db", "users"),
		favorite.NewItem("shop", "users.v2"),
		favorite.NewItem("my.db", "t.x"),
		favorite.NewItem("order db", "line items"),
	}

	for _, it := range items {
		t.Run(it.String(), func(t *testing.T) {
			got, err := parseTarget([]string{it.String()})
			require.NoError(t, err)
			assert.Equal(t, it, got)
		})
	}
}
