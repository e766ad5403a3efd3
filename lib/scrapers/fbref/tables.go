package fbref

import (
	"context"
	"fmt"
	"strings"

	"footstats/lib/htmltable"
	"footstats/lib/stattable"

	"github.com/PuerkitoBio/goquery"
)

var extractor = htmltable.Extractor{}

// Rules describes the cleanup applied to a stat table after
// extraction.
type Rules struct {
	// ExcludeColumns lists columns dropped entirely.
	ExcludeColumns []string
	// LinkColumns maps a column name to a url path marker. cell text
	// in that column is replaced with the path segment following the
	// marker in the cell's link target.
	LinkColumns map[string]string
	// RenameColumns maps old column names to new ones, applied after
	// link substitution.
	RenameColumns map[string]string
}

func (r Rules) apply(table *stattable.StatTable) {
	for column, marker := range r.LinkColumns {
		idx := table.ColumnIndex(column)
		if idx < 0 {
			continue
		}
		for rowIdx, row := range table.Rows {
			cell := row[idx]
			if !cell.Valid {
				continue
			}
			id := pathSegmentAfter(cell.Href, marker)
			if id == "" {
				table.Rows[rowIdx][idx] = stattable.Cell{}
				continue
			}
			cell.Text = id
			table.Rows[rowIdx][idx] = cell
		}
	}
	for old, new := range r.RenameColumns {
		table.RenameColumn(old, new)
	}
	table.DropColumns(r.ExcludeColumns...)
}

// the excluded columns hold presentation artifacts rather than stats.
// match report and nationality cells are reduced to the identifier
// inside their link target since the visible text is a label.
var defaultRules = Rules{
	ExcludeColumns: []string{"Rank", "Notes", "Day", "Attendance", "Matches"},
	LinkColumns: map[string]string{
		"Match Report": "matches",
		"Nationality":  "country",
	},
	RenameColumns: map[string]string{
		"Match Report": "Match ID",
	},
}

func (c *Client) extractTable(ctx context.Context, doc *goquery.Document, pageUrl, tableId string) (*stattable.StatTable, error) {
	table, err := extractor.Extract(ctx, doc, tableId)
	if err != nil {
		return nil, &ParseError{Url: pageUrl, Reason: fmt.Sprintf("table %s", tableId), Err: err}
	}
	defaultRules.apply(table)
	return table, nil
}

// table ids with these prefixes hold page meta content rather than
// stats.
var metaTablePrefixes = []string{"similar_", "scout_summary_"}

func isMetaTable(id string) bool {
	for _, prefix := range metaTablePrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

func statTables(ctx context.Context, doc *goquery.Document) []htmltable.TableInfo {
	infos := htmltable.ListTables(ctx, doc)
	out := make([]htmltable.TableInfo, 0, len(infos))
	for _, info := range infos {
		if isMetaTable(info.Id) {
			continue
		}
		out = append(out, info)
	}
	return out
}
