package htmltable

import (
	"context"
	_ "embed"
	"strings"
	"testing"

	"footstats/lib/stattable"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/stats_page.html
var statsPage string

func parsePage(t *testing.T, contents string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		input  string
		expect string
	}{
		{input: "  Manchester \n City  ", expect: "Manchester City"},
		{input: "Arsenal", expect: "Arsenal"},
		{input: "\t\n", expect: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, CleanText(test.input))
	}
}

func TestExtractFlattensGroupedHeader(t *testing.T) {
	doc := parsePage(t, statsPage)

	table, err := Extractor{}.Extract(context.Background(), doc, "stats_squads_standard_for")
	require.NoError(t, err)

	require.Equal(t, []string{
		"Squad",
		"Number of Players used in Games",
		"Playing Time_Matches Played",
		"Playing Time_Minutes",
		"Performance_Goals",
		"Performance_Assists",
	}, table.Columns)
}

func TestExtractSkipsDecorativeRows(t *testing.T) {
	doc := parsePage(t, statsPage)

	table, err := Extractor{}.Extract(context.Background(), doc, "stats_squads_standard_for")
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	squads, ok := table.Column("Squad")
	require.True(t, ok)
	require.Equal(t, "Arsenal", squads[0].Text)
	require.Equal(t, "Burnley", squads[1].Text)
	require.Equal(t, "Chelsea", squads[2].Text)
}

func TestExtractMissingMarkers(t *testing.T) {
	doc := parsePage(t, statsPage)

	table, err := Extractor{}.Extract(context.Background(), doc, "stats_squads_standard_for")
	require.NoError(t, err)

	goals, ok := table.Column("Performance_Goals")
	require.True(t, ok)
	require.True(t, goals[0].Valid)
	require.False(t, goals[1].Valid)

	assists, ok := table.Column("Performance_Assists")
	require.True(t, ok)
	require.False(t, assists[1].Valid)

	n, err := goals[0].Int()
	require.NoError(t, err)
	require.Equal(t, 91, n)

	minutes, ok := table.Column("Playing Time_Minutes")
	require.True(t, ok)
	mins, err := minutes[0].Int()
	require.NoError(t, err)
	require.Equal(t, 3420, mins)
}

func TestExtractPadsShortRows(t *testing.T) {
	doc := parsePage(t, statsPage)

	table, err := Extractor{}.Extract(context.Background(), doc, "stats_squads_standard_for")
	require.NoError(t, err)

	for _, row := range table.Rows {
		require.Len(t, row, len(table.Columns))
	}

	assists, ok := table.Column("Performance_Assists")
	require.True(t, ok)
	require.False(t, assists[2].Valid)
}

func TestExtractCellHrefs(t *testing.T) {
	doc := parsePage(t, statsPage)

	table, err := Extractor{}.Extract(context.Background(), doc, "stats_squads_standard_for")
	require.NoError(t, err)

	cell, ok := table.Cell(0, "Squad")
	require.True(t, ok)
	require.Equal(t, "/en/squads/18bb7c10/Arsenal-Stats", cell.Href)

	cell, ok = table.Cell(0, "Playing Time_Matches Played")
	require.True(t, ok)
	require.Empty(t, cell.Href)
}

func TestExtractWholeTable(t *testing.T) {
	doc := parsePage(t, statsPage)

	table, err := Extractor{}.Extract(context.Background(), doc, "matchlogs_for")
	require.NoError(t, err)

	expected := &stattable.StatTable{
		Name: "matchlogs_for",
		Columns: []string{
			"Date", "Opponent", "Result", "Goals For", "Goals Against", "Match Report",
		},
		Rows: [][]stattable.Cell{
			{
				{Text: "2023-08-12", Href: "/en/matches/2023-08-12", Valid: true},
				{Text: "Manchester City", Href: "/en/squads/b8fd03ef/Manchester-City-Stats", Valid: true},
				{Text: "L", Valid: true},
				{Text: "0", Valid: true},
				{Text: "3", Valid: true},
				{Text: "Match Report", Href: "/en/matches/9c4f2bcd/Burnley-Manchester-City-August-12-2023-Premier-League", Valid: true},
			},
			{
				{Text: "2023-08-19", Href: "/en/matches/2023-08-19", Valid: true},
				{Text: "Arsenal", Href: "/en/squads/18bb7c10/Arsenal-Stats", Valid: true},
				{Text: "D", Valid: true},
				{Text: "2", Valid: true},
				{Text: "2", Valid: true},
				{Text: "Match Report", Href: "/en/matches/1a2b3c4d/Burnley-Arsenal-August-19-2023-Premier-League", Valid: true},
			},
		},
	}

	diff := cmp.Diff(expected, table)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractAll(t *testing.T) {
	doc := parsePage(t, statsPage)

	tables, err := Extractor{}.ExtractAll(context.Background(), doc, "table.stats_table")
	require.NoError(t, err)

	require.Len(t, tables, 2)
	require.Equal(t, "stats_squads_standard_for", tables[0].Name)
	require.Equal(t, "matchlogs_for", tables[1].Name)
	require.Len(t, tables[0].Rows, 3)
	require.Len(t, tables[1].Rows, 2)
}

func TestExtractAllNoMatch(t *testing.T) {
	doc := parsePage(t, statsPage)

	_, err := Extractor{}.ExtractAll(context.Background(), doc, "table.keeper_table")
	require.ErrorIs(t, err, ErrNoTable)
}

func TestExtractAllHeaderless(t *testing.T) {
	doc := parsePage(t, statsPage)

	// the legend table has no header row and poisons the whole match
	_, err := Extractor{}.ExtractAll(context.Background(), doc, "table")
	require.ErrorIs(t, err, ErrNoHeader)
}

func TestExtractNoTable(t *testing.T) {
	doc := parsePage(t, statsPage)

	_, err := Extractor{}.Extract(context.Background(), doc, "stats_keeper_for")
	require.ErrorIs(t, err, ErrNoTable)
}

func TestExtractNoHeader(t *testing.T) {
	doc := parsePage(t, statsPage)

	_, err := Extractor{}.Extract(context.Background(), doc, "legend_table")
	require.ErrorIs(t, err, ErrNoHeader)
}

func TestExtractCustomMarkers(t *testing.T) {
	doc := parsePage(t, statsPage)

	extractor := Extractor{MissingMarkers: []string{""}}
	table, err := extractor.Extract(context.Background(), doc, "stats_squads_standard_for")
	require.NoError(t, err)

	goals, ok := table.Column("Performance_Goals")
	require.True(t, ok)
	require.True(t, goals[1].Valid)
	require.Equal(t, "—", goals[1].Text)
}

func TestListTables(t *testing.T) {
	doc := parsePage(t, statsPage)

	infos := ListTables(context.Background(), doc)
	require.Len(t, infos, 3)

	byId := map[string]string{}
	for _, info := range infos {
		byId[info.Id] = info.Caption
	}
	require.Equal(t, "Squad Standard Stats Table", byId["stats_squads_standard_for"])
	require.Equal(t, "Scores & Fixtures Table", byId["matchlogs_for"])
	require.Equal(t, "", byId["legend_table"])
}

func TestGetAnchors(t *testing.T) {
	doc := parsePage(t, statsPage)

	anchors := GetAnchors(context.Background(), doc.Find("table#matchlogs_for tbody td[data-stat=opponent] a"))
	require.Len(t, anchors, 2)
	require.Equal(t, "Manchester City", anchors[0].Name)
	require.Equal(t, "/en/squads/b8fd03ef/Manchester-City-Stats", anchors[0].Href)
}
