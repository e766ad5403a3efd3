package fbref

import (
	"context"
	"fmt"
	"strings"

	"footstats/lib/htmltable"
	"footstats/lib/textutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Team is a squad playing in a league.
type Team struct {
	Name   string
	Id     string
	League League
}

// Player is a squad member.
type Player struct {
	Name string
	Id   string
	Team Team
}

// Teams lists the squads in a league's standings for a season (""
// meaning current).
func (c *Client) Teams(ctx context.Context, league League, season string) ([]Team, error) {
	ctx, span := tracer.Start(ctx, "client:Teams")
	defer span.End()
	span.SetAttributes(
		attribute.String("league", league.Name),
		attribute.String("season", season),
	)

	if season == "" {
		season = CurrentSeason()
	}

	doc, link, err := c.get(ctx, leaguePath(league, season))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch league page")
		return nil, err
	}

	tableId := fmt.Sprintf("results%s%d1_overall", season, league.Id)
	standings := doc.Find(fmt.Sprintf("table#%s", tableId)).First()
	if standings.Length() == 0 {
		err := &ParseError{Url: link, Reason: fmt.Sprintf("missing standings table %s", tableId)}
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing standings table")
		return nil, err
	}

	anchors := htmltable.GetAnchors(ctx, standings.Find("tbody a"))
	var teams []Team
	for _, anchor := range anchors {
		id := pathSegmentAfter(anchor.Href, "squads")
		if id == "" || anchor.Name == "" {
			continue
		}
		teams = append(teams, Team{Name: anchor.Name, Id: id, League: league})
	}

	span.SetAttributes(attribute.Int("count", len(teams)))
	return teams, nil
}

// Players lists the squad members on a team's page for a season (""
// meaning current).
func (c *Client) Players(ctx context.Context, team Team, season string) ([]Player, error) {
	ctx, span := tracer.Start(ctx, "client:Players")
	defer span.End()
	span.SetAttributes(
		attribute.String("team", team.Name),
		attribute.String("season", season),
	)

	doc, link, err := c.get(ctx, teamPath(team, season))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch team page")
		return nil, err
	}

	tableId := defaultTeamTable(team)
	roster := doc.Find(fmt.Sprintf("table#%s", tableId)).First()
	if roster.Length() == 0 {
		err := &ParseError{Url: link, Reason: fmt.Sprintf("missing roster table %s", tableId)}
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing roster table")
		return nil, err
	}

	anchors := htmltable.GetAnchors(ctx, roster.Find("tbody a"))
	var players []Player
	for _, anchor := range anchors {
		// per-player match log links share the player url prefix but
		// are labeled "Matches"
		if strings.EqualFold(anchor.Name, "Matches") {
			continue
		}
		id := pathSegmentAfter(anchor.Href, "players")
		if id == "" || anchor.Name == "" {
			continue
		}
		players = append(players, Player{Name: anchor.Name, Id: id, Team: team})
	}

	span.SetAttributes(attribute.Int("count", len(players)))
	return players, nil
}

// ResolveTeam finds a team by display name within a league's current
// standings, ignoring case and whitespace. the first directory entry
// that matches wins. when nothing matches, the returned NotFoundError
// carries the closest standings entries.
func (c *Client) ResolveTeam(ctx context.Context, league League, name string) (Team, error) {
	ctx, span := tracer.Start(ctx, "client:ResolveTeam")
	defer span.End()
	span.SetAttributes(
		attribute.String("league", league.Name),
		attribute.String("name", name),
	)

	teams, err := c.Teams(ctx, league, "")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list teams")
		return Team{}, err
	}

	for _, team := range teams {
		if textutil.MatchName(team.Name, name) {
			return team, nil
		}
	}

	names := make([]string, len(teams))
	for i, team := range teams {
		names[i] = team.Name
	}
	notFound := &NotFoundError{
		Kind:        "team",
		Name:        name,
		Scope:       league.Name,
		Suggestions: textutil.RankSimilar(name, names, maxSuggestions),
	}
	span.RecordError(notFound)
	span.SetStatus(codes.Error, "team not found")
	return Team{}, notFound
}

// ResolvePlayer finds a player by display name within a team's
// current squad, ignoring case and whitespace. the first directory
// entry that matches wins. when nothing matches, the returned
// NotFoundError carries the closest squad members.
func (c *Client) ResolvePlayer(ctx context.Context, team Team, name string) (Player, error) {
	ctx, span := tracer.Start(ctx, "client:ResolvePlayer")
	defer span.End()
	span.SetAttributes(
		attribute.String("team", team.Name),
		attribute.String("name", name),
	)

	players, err := c.Players(ctx, team, "")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list players")
		return Player{}, err
	}

	for _, player := range players {
		if textutil.MatchName(player.Name, name) {
			return player, nil
		}
	}

	names := make([]string, len(players))
	for i, player := range players {
		names[i] = player.Name
	}
	notFound := &NotFoundError{
		Kind:        "player",
		Name:        name,
		Scope:       team.Name,
		Suggestions: textutil.RankSimilar(name, names, maxSuggestions),
	}
	span.RecordError(notFound)
	span.SetStatus(codes.Error, "player not found")
	return Player{}, notFound
}
