package htmltable

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"footstats/lib/stattable"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNoTable  = errors.New("no table found")
	ErrNoHeader = errors.New("table has no header row")
)

var (
	// rows carrying these classes are visual artifacts or repeated
	// headers, not data.
	DefaultSkipRowClasses = []string{"spacer", "blank_table", "thead"}
	// cell contents that stand in for an absent value.
	DefaultMissingMarkers = []string{"", "-", "—"}
)

// Extractor turns an html table into a stattable.StatTable. the zero
// value uses the default skip classes and missing markers.
type Extractor struct {
	// SkipRowClasses lists tbody row classes to drop. nil means
	// DefaultSkipRowClasses.
	SkipRowClasses []string
	// MissingMarkers lists cell texts treated as absent values. nil
	// means DefaultMissingMarkers.
	MissingMarkers []string
}

// headerLabel prefers the aria-label attribute since the visible
// header text is often abbreviated.
func headerLabel(cell *goquery.Selection) string {
	label := strings.TrimSpace(cell.AttrOr("aria-label", ""))
	if label != "" {
		return label
	}
	if len(cell.Nodes) == 0 {
		return ""
	}
	return CleanText(GetText(cell.Nodes[0]))
}

// headerGrid expands every header row into one slice of labels per
// level, repeating labels across their colspan.
func headerGrid(table *goquery.Selection) [][]string {
	var levels [][]string
	table.Find("thead tr").Each(func(_ int, tr *goquery.Selection) {
		var level []string
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			width := 1
			if v, ok := cell.Attr("colspan"); ok {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err == nil && n > 1 {
					width = n
				}
			}
			label := headerLabel(cell)
			for i := 0; i < width; i++ {
				level = append(level, label)
			}
		})
		levels = append(levels, level)
	})
	return levels
}

// flattenColumns joins the grouped header levels above each column
// into a single name, e.g. "Performance" over "Goals" becomes
// "Performance_Goals".
func flattenColumns(levels [][]string) []string {
	width := 0
	for _, level := range levels {
		if len(level) > width {
			width = len(level)
		}
	}

	columns := make([]string, width)
	for i := 0; i < width; i++ {
		var parts []string
		for _, level := range levels {
			if i < len(level) && level[i] != "" {
				parts = append(parts, level[i])
			}
		}
		columns[i] = strings.Join(parts, "_")
	}
	return columns
}

func (e Extractor) makeCell(sel *goquery.Selection, markers []string) stattable.Cell {
	text := ""
	if len(sel.Nodes) > 0 {
		text = CleanText(GetText(sel.Nodes[0]))
	}
	if slices.Contains(markers, text) {
		return stattable.Cell{}
	}
	return stattable.Cell{
		Text:  text,
		Href:  sel.Find("a").First().AttrOr("href", ""),
		Valid: true,
	}
}

// Extract pulls the table with the given element id out of the
// document. it returns ErrNoTable when the page has no such table and
// ErrNoHeader when the table carries no usable header.
func (e Extractor) Extract(ctx context.Context, doc *goquery.Document, id string) (*stattable.StatTable, error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()
	span.SetAttributes(attribute.String("table", id))

	table := doc.Find(fmt.Sprintf("table#%s", id)).First()
	if table.Length() == 0 {
		err := fmt.Errorf("%w: %s", ErrNoTable, id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "table is not on the page")
		return nil, err
	}

	result, err := e.convert(table, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to convert table")
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("columns", len(result.Columns)),
		attribute.Int("rows", len(result.Rows)),
	)
	return result, nil
}

// ExtractAll pulls every table matched by the goquery selector out of
// the document in document order. it returns ErrNoTable when nothing
// matches and ErrNoHeader when any matched table carries no usable
// header.
func (e Extractor) ExtractAll(ctx context.Context, doc *goquery.Document, selector string) ([]*stattable.StatTable, error) {
	ctx, span := tracer.Start(ctx, "ExtractAll")
	defer span.End()
	span.SetAttributes(attribute.String("selector", selector))

	matches := doc.Find(selector).Filter("table")
	if matches.Length() == 0 {
		err := fmt.Errorf("%w: %s", ErrNoTable, selector)
		span.RecordError(err)
		span.SetStatus(codes.Error, "selector matched no tables")
		return nil, err
	}

	var tables []*stattable.StatTable
	var convertErr error
	matches.EachWithBreak(func(_ int, table *goquery.Selection) bool {
		result, err := e.convert(table, table.AttrOr("id", selector))
		if err != nil {
			convertErr = err
			return false
		}
		tables = append(tables, result)
		return true
	})
	if convertErr != nil {
		span.RecordError(convertErr)
		span.SetStatus(codes.Error, "failed to convert table")
		return nil, convertErr
	}

	span.SetAttributes(attribute.Int("tables", len(tables)))
	return tables, nil
}

// convert turns a single table element into a StatTable named after
// its element id. label only feeds error messages.
func (e Extractor) convert(table *goquery.Selection, label string) (*stattable.StatTable, error) {
	columns := flattenColumns(headerGrid(table))
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoHeader, label)
	}

	skip := e.SkipRowClasses
	if skip == nil {
		skip = DefaultSkipRowClasses
	}
	markers := e.MissingMarkers
	if markers == nil {
		markers = DefaultMissingMarkers
	}

	var rows [][]stattable.Cell
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		for _, class := range skip {
			if tr.HasClass(class) {
				return
			}
		}

		row := make([]stattable.Cell, 0, len(columns))
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, e.makeCell(cell, markers))
		})

		// some rows omit trailing cells, pad them so the grid stays
		// rectangular
		for len(row) < len(columns) {
			row = append(row, stattable.Cell{})
		}
		rows = append(rows, row[:len(columns)])
	})

	return &stattable.StatTable{
		Name:    table.AttrOr("id", ""),
		Columns: columns,
		Rows:    rows,
	}, nil
}

type TableInfo struct {
	Id      string
	Caption string
}

// ListTables reports every table on the page that carries an element
// id, along with its caption text.
func ListTables(ctx context.Context, doc *goquery.Document) []TableInfo {
	ctx, span := tracer.Start(ctx, "ListTables")
	defer span.End()

	var infos []TableInfo
	doc.Find("table[id]").Each(func(_ int, table *goquery.Selection) {
		id := table.AttrOr("id", "")
		if id == "" {
			return
		}
		caption := CleanText(table.Find("caption").First().Text())
		infos = append(infos, TableInfo{Id: id, Caption: caption})
		span.AddEvent("table", trace.WithAttributes(
			attribute.String("id", id),
			attribute.String("caption", caption),
		))
	})
	return infos
}
