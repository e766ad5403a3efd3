package fbref

import (
	"context"
	"fmt"
	"strings"

	"footstats/lib/htmltable"
	"footstats/lib/stattable"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// the per-season standard stats table on a player page, restricted to
// domestic league play.
const defaultPlayerTable = "stats_standard_dom_lg"

func playerPath(player Player) string {
	return fmt.Sprintf("/players/%s/%s", player.Id, urlizeName(player.Name))
}

// PlayerStats returns the player's standard domestic league stats for
// the current season.
func (c *Client) PlayerStats(ctx context.Context, player Player) (*stattable.StatTable, error) {
	return c.PlayerStatsTable(ctx, player, "", "")
}

// PlayerStatsTable returns one stat table off the player page. player
// tables break down by season, so rows are filtered to the given
// season ("" meaning current) whenever the table has a Season column.
func (c *Client) PlayerStatsTable(ctx context.Context, player Player, season, tableId string) (*stattable.StatTable, error) {
	ctx, span := tracer.Start(ctx, "client:PlayerStatsTable")
	defer span.End()
	span.SetAttributes(
		attribute.String("player", player.Name),
		attribute.String("season", season),
		attribute.String("table", tableId),
	)

	if tableId == "" {
		tableId = defaultPlayerTable
	}
	if season == "" {
		season = CurrentSeason()
	}

	doc, link, err := c.get(ctx, playerPath(player))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch player page")
		return nil, err
	}

	table, err := c.extractTable(ctx, doc, link, tableId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract table")
		return nil, err
	}

	seasonIdx := table.ColumnIndex("Season")
	if seasonIdx >= 0 {
		table.FilterRows(func(row []stattable.Cell) bool {
			return row[seasonIdx].Text == season
		})
	}
	return table, nil
}

// AvailablePlayerStats lists the stat tables present on the player
// page.
func (c *Client) AvailablePlayerStats(ctx context.Context, player Player) ([]htmltable.TableInfo, error) {
	ctx, span := tracer.Start(ctx, "client:AvailablePlayerStats")
	defer span.End()
	span.SetAttributes(attribute.String("player", player.Name))

	doc, _, err := c.get(ctx, playerPath(player))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch player page")
		return nil, err
	}
	return statTables(ctx, doc), nil
}

// PlayerBio holds the header section of a player page. Fields keys
// are the bolded labels as they appear on the page, e.g. "Position"
// or "Born".
type PlayerBio struct {
	Name   string
	Fields map[string]string
}

// PlayerBio returns the biographical details off the player page.
func (c *Client) PlayerBio(ctx context.Context, player Player) (*PlayerBio, error) {
	ctx, span := tracer.Start(ctx, "client:PlayerBio")
	defer span.End()
	span.SetAttributes(attribute.String("player", player.Name))

	doc, link, err := c.get(ctx, playerPath(player))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch player page")
		return nil, err
	}

	meta := doc.Find("div#meta").First()
	if meta.Length() == 0 {
		err := &ParseError{Url: link, Reason: "missing player meta section"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing player meta section")
		return nil, err
	}

	name := htmltable.CleanText(meta.Find("h1").First().Text())
	if name == "" {
		name = player.Name
	}

	bio := &PlayerBio{
		Name:   name,
		Fields: map[string]string{},
	}
	meta.Find("p").Each(func(_ int, p *goquery.Selection) {
		strong := p.Find("strong").First()
		if strong.Length() == 0 {
			return
		}
		label := htmltable.CleanText(strong.Text())
		key := strings.TrimSuffix(label, ":")
		if key == "" {
			return
		}

		value := htmltable.CleanText(p.Text())
		value = strings.TrimPrefix(value, label)
		value = strings.TrimPrefix(strings.TrimSpace(value), ":")
		bio.Fields[key] = strings.TrimSpace(value)
	})
	return bio, nil
}
