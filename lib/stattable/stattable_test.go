package stattable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testTable() *StatTable {
	return &StatTable{
		Name:    "stats_squads_standard_for",
		Columns: []string{"Squad", "Performance_Goals", "Playing Time_Min"},
		Rows: [][]Cell{
			{
				{Text: "Arsenal", Href: "/squads/18bb7c10/Arsenal-Stats", Valid: true},
				{Text: "91", Valid: true},
				{Text: "3,420", Valid: true},
			},
			{
				{Text: "Burnley", Href: "/squads/943e8050/Burnley-Stats", Valid: true},
				{Valid: false},
				{Text: "3,420", Valid: true},
			},
		},
	}
}

func TestCellConversions(t *testing.T) {
	valid := Cell{Text: "91", Valid: true}

	f, err := valid.Float64()
	require.NoError(t, err)
	require.Equal(t, float64(91), f)

	n, err := valid.Int()
	require.NoError(t, err)
	require.Equal(t, 91, n)

	comma := Cell{Text: "3,420", Valid: true}
	n, err = comma.Int()
	require.NoError(t, err)
	require.Equal(t, 3420, n)

	missing := Cell{Valid: false}
	_, err = missing.Float64()
	require.ErrorIs(t, err, ErrMissing)
	_, err = missing.Int()
	require.ErrorIs(t, err, ErrMissing)

	garbage := Cell{Text: "n/a", Valid: true}
	_, err = garbage.Float64()
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrMissing)
}

func TestColumnLookup(t *testing.T) {
	tbl := testTable()

	require.Equal(t, 1, tbl.ColumnIndex("Performance_Goals"))
	require.Equal(t, -1, tbl.ColumnIndex("Nonexistent"))

	cell, ok := tbl.Cell(0, "Squad")
	require.True(t, ok)
	require.Equal(t, "Arsenal", cell.Text)
	require.Equal(t, "/squads/18bb7c10/Arsenal-Stats", cell.Href)

	_, ok = tbl.Cell(5, "Squad")
	require.False(t, ok)

	goals, ok := tbl.Column("Performance_Goals")
	require.True(t, ok)
	require.Len(t, goals, 2)
	require.True(t, goals[0].Valid)
	require.False(t, goals[1].Valid)
}

func TestRenameColumn(t *testing.T) {
	tbl := testTable()
	tbl.RenameColumn("Squad", "Team")
	require.Equal(t, 0, tbl.ColumnIndex("Team"))
	require.Equal(t, -1, tbl.ColumnIndex("Squad"))

	tbl.RenameColumn("Nonexistent", "Other")
	require.Equal(t, []string{"Team", "Performance_Goals", "Playing Time_Min"}, tbl.Columns)
}

func TestDropColumns(t *testing.T) {
	tbl := testTable()
	tbl.DropColumns("Playing Time_Min", "Nonexistent")

	require.Equal(t, []string{"Squad", "Performance_Goals"}, tbl.Columns)
	for _, row := range tbl.Rows {
		require.Len(t, row, 2)
	}
	require.Equal(t, "91", tbl.Rows[0][1].Text)
}

func TestFilterRows(t *testing.T) {
	tbl := testTable()
	idx := tbl.ColumnIndex("Squad")
	tbl.FilterRows(func(row []Cell) bool {
		return row[idx].Text == "Arsenal"
	})

	require.Len(t, tbl.Rows, 1)
	require.Equal(t, "Arsenal", tbl.Rows[0][0].Text)
}

func TestRender(t *testing.T) {
	tbl := testTable()
	out := tbl.Render()

	require.True(t, strings.Contains(out, "Arsenal"))
	require.True(t, strings.Contains(out, "Performance_Goals"))
}
