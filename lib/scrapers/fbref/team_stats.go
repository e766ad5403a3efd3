package fbref

import (
	"context"
	"fmt"

	"footstats/lib/htmltable"
	"footstats/lib/stattable"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func teamPath(team Team, season string) string {
	slug := urlizeName(team.Name) + "-Stats"
	if season == "" || season == CurrentSeason() {
		return fmt.Sprintf("/squads/%s/%s", team.Id, slug)
	}
	return fmt.Sprintf("/squads/%s/%s/%s", team.Id, season, slug)
}

// the player standard stats table on a team page carries the league
// id in its element id.
func defaultTeamTable(team Team) string {
	return fmt.Sprintf("stats_standard_%d", team.League.Id)
}

// TeamStats returns the current season's player standard stats for
// the team.
func (c *Client) TeamStats(ctx context.Context, team Team) (*stattable.StatTable, error) {
	return c.TeamStatsTable(ctx, team, "", "")
}

// TeamStatsTable returns one stat table off the team page. season ""
// means the current season, tableId "" means the player standard
// stats table.
func (c *Client) TeamStatsTable(ctx context.Context, team Team, season, tableId string) (*stattable.StatTable, error) {
	ctx, span := tracer.Start(ctx, "client:TeamStatsTable")
	defer span.End()
	span.SetAttributes(
		attribute.String("team", team.Name),
		attribute.String("season", season),
		attribute.String("table", tableId),
	)

	if tableId == "" {
		tableId = defaultTeamTable(team)
	}

	doc, link, err := c.get(ctx, teamPath(team, season))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch team page")
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

// TeamMatches returns the team's match log for a season (""
// meaning current), one row per fixture.
func (c *Client) TeamMatches(ctx context.Context, team Team, season string) (*stattable.StatTable, error) {
	ctx, span := tracer.Start(ctx, "client:TeamMatches")
	defer span.End()
	span.SetAttributes(
		attribute.String("team", team.Name),
		attribute.String("season", season),
	)

	if season == "" {
		season = CurrentSeason()
	}

	doc, link, err := c.get(ctx, fmt.Sprintf("/squads/%s/%s/matchlogs/", team.Id, season))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch match log page")
		return nil, err
	}

	table, err := c.extractTable(ctx, doc, link, "matchlogs_for")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract match log")
		return nil, err
	}
	return table, nil
}

// AvailableTeamStats lists the stat tables present on the team page
// for the given season ("" meaning current).
func (c *Client) AvailableTeamStats(ctx context.Context, team Team, season string) ([]htmltable.TableInfo, error) {
	ctx, span := tracer.Start(ctx, "client:AvailableTeamStats")
	defer span.End()
	span.SetAttributes(
		attribute.String("team", team.Name),
		attribute.String("season", season),
	)

	doc, _, err := c.get(ctx, teamPath(team, season))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch team page")
		return nil, err
	}
	return statTables(ctx, doc), nil
}
