package fbref

import (
	"context"
	"fmt"
	"strings"

	"footstats/lib/htmltable"
	"footstats/lib/stattable"
	"footstats/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

// the extra stats block under the main comparison renders bare value
// pairs in this fixed order.
var extraStatHeaders = []string{
	"Fouls",
	"Corners",
	"Crosses",
	"Touches",
	"Tackles",
	"Interceptions",
	"Aerials Won",
	"Clearances",
	"Offsides",
	"Goal Kicks",
	"Throw Ins",
	"Long Balls",
}

type matchStat struct {
	name string
	home string
	away string
}

// MatchStats returns the team-level comparison off a match report
// page, one row per side with the stats as columns. team names the
// side the caller cares about and must be one of the two involved, a
// mismatch comes back as a NotFoundError.
func (c *Client) MatchStats(ctx context.Context, matchId, team string) (*stattable.StatTable, error) {
	ctx, span := tracer.Start(ctx, "client:MatchStats")
	defer span.End()
	span.SetAttributes(
		attribute.String("match", matchId),
		attribute.String("team", team),
	)

	doc, link, err := c.get(ctx, fmt.Sprintf("/matches/%s", matchId))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch match page")
		return nil, err
	}

	teamStats := doc.Find("div#team_stats").First()
	if teamStats.Length() == 0 {
		err := &ParseError{Url: link, Reason: "missing team stats section"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing team stats section")
		return nil, err
	}

	// the first row of the comparison table names both sides
	var sides []string
	teamStats.Find("tr").First().ChildrenFiltered("th").Each(func(_ int, th *goquery.Selection) {
		if name := htmltable.CleanText(th.Text()); name != "" {
			sides = append(sides, name)
		}
	})
	if len(sides) != 2 {
		err := &ParseError{Url: link, Reason: "missing side names in team stats"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing side names in team stats")
		return nil, err
	}

	matched := false
	for _, side := range sides {
		if textutil.MatchName(side, team) {
			matched = true
			break
		}
	}
	if !matched {
		err := &NotFoundError{
			Kind:        "team",
			Name:        team,
			Scope:       fmt.Sprintf("match %s", matchId),
			Suggestions: textutil.RankSimilar(team, sides, maxSuggestions),
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "team not in this match")
		return nil, err
	}

	// the comparison table alternates a single-cell row naming the
	// stat with a row holding both values
	var stats []matchStat
	current := ""
	teamStats.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		header := tr.Find("th[colspan]").First()
		if header.Length() > 0 {
			current = htmltable.CleanText(header.Text())
			return
		}
		if current == "" {
			return
		}
		values := tr.ChildrenFiltered("td")
		if values.Length() < 2 {
			return
		}
		home := statValue(values.Eq(0))
		away := statValue(values.Eq(1))
		// the cards row renders icons with no readable value
		if home != "" || away != "" {
			stats = append(stats, matchStat{name: current, home: home, away: away})
		}
		current = ""
	})

	if extra := doc.Find("div#team_stats_extra").First(); extra.Length() > 0 {
		numbers := collectNumbers(extra)
		for i, header := range extraStatHeaders {
			if i*2+1 >= len(numbers) {
				break
			}
			stats = append(stats, matchStat{name: header, home: numbers[i*2], away: numbers[i*2+1]})
		}
	}

	table := &stattable.StatTable{
		Name:    "team_stats",
		Columns: make([]string, 0, len(stats)+1),
	}
	table.Columns = append(table.Columns, "Team")
	for _, stat := range stats {
		table.Columns = append(table.Columns, stat.name)
	}

	home := make([]stattable.Cell, 0, len(stats)+1)
	away := make([]stattable.Cell, 0, len(stats)+1)
	home = append(home, textCell(sides[0]))
	away = append(away, textCell(sides[1]))
	for _, stat := range stats {
		home = append(home, textCell(stat.home))
		away = append(away, textCell(stat.away))
	}
	table.Rows = [][]stattable.Cell{home, away}

	span.SetAttributes(attribute.Int("stats", len(stats)))
	return table, nil
}

// statValue prefers the bolded value inside a cell since the plain
// text often appends success counts.
func statValue(td *goquery.Selection) string {
	strong := td.Find("strong").First()
	if strong.Length() > 0 {
		return htmltable.CleanText(strong.Text())
	}
	return htmltable.CleanText(td.Text())
}

func textCell(text string) stattable.Cell {
	if text == "" {
		return stattable.Cell{}
	}
	return stattable.Cell{Text: text, Valid: true}
}

// ownText returns the text held directly by an element, excluding
// its child elements.
func ownText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	var b strings.Builder
	for child := sel.Nodes[0].FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// collectNumbers gathers numeric leaf texts in document order. the
// extra stats block renders home value, label, away value triplets so
// the numbers pair up two by two.
func collectNumbers(sel *goquery.Selection) []string {
	var numbers []string
	sel.Find("div").Each(func(_ int, div *goquery.Selection) {
		text := htmltable.CleanText(ownText(div))
		if isDigits(text) {
			numbers = append(numbers, text)
		}
	})
	return numbers
}
