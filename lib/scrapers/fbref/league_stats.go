package fbref

import (
	"context"
	"fmt"

	"footstats/lib/htmltable"
	"footstats/lib/stattable"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// the squad-level standard stats table, present on every league page.
const defaultLeagueTable = "stats_squads_standard_for"

func leaguePath(league League, season string) string {
	slug := league.Slug() + "-Stats"
	if season == "" || season == CurrentSeason() {
		return fmt.Sprintf("/comps/%d/%s", league.Id, slug)
	}
	return fmt.Sprintf("/comps/%d/%s/%s-%s", league.Id, season, season, slug)
}

// LeagueStats returns the current season's squad standard stats for
// the league.
func (c *Client) LeagueStats(ctx context.Context, league League) (*stattable.StatTable, error) {
	return c.LeagueStatsTable(ctx, league, "", "")
}

// LeagueStatsTable returns one stat table off the league page. season
// "" means the current season, tableId "" means the squad standard
// stats table.
func (c *Client) LeagueStatsTable(ctx context.Context, league League, season, tableId string) (*stattable.StatTable, error) {
	ctx, span := tracer.Start(ctx, "client:LeagueStatsTable")
	defer span.End()
	span.SetAttributes(
		attribute.String("league", league.Name),
		attribute.String("season", season),
		attribute.String("table", tableId),
	)

	if tableId == "" {
		tableId = defaultLeagueTable
	}

	doc, link, err := c.get(ctx, leaguePath(league, season))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch league page")
		return nil, err
	}

	table, err := c.extractTable(ctx, doc, link, tableId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract table")
		return nil, err
	}
	return table, nil
}

// AvailableLeagueStats lists the stat tables present on the league
// page for the given season ("" meaning current).
func (c *Client) AvailableLeagueStats(ctx context.Context, league League, season string) ([]htmltable.TableInfo, error) {
	ctx, span := tracer.Start(ctx, "client:AvailableLeagueStats")
	defer span.End()
	span.SetAttributes(
		attribute.String("league", league.Name),
		attribute.String("season", season),
	)

	doc, _, err := c.get(ctx, leaguePath(league, season))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch league page")
		return nil, err
	}
	return statTables(ctx, doc), nil
}
