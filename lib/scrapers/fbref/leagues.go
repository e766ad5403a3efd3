package fbref

import (
	"footstats/lib/textutil"
)

// League is a domestic competition the site keeps stats for.
type League struct {
	Name    string
	Country string
	Id      int
}

// Slug returns the name in the form it takes inside site urls.
func (l League) Slug() string {
	return urlizeName(l.Name)
}

// the site assigns every competition a numeric id that shows up in
// urls and table element ids.
var leagues = []League{
	{Name: "Premier League", Country: "England", Id: 9},
	{Name: "Serie A", Country: "Italy", Id: 11},
	{Name: "La Liga", Country: "Spain", Id: 12},
	{Name: "Ligue 1", Country: "France", Id: 13},
	{Name: "Bundesliga", Country: "Germany", Id: 20},
	{Name: "Eredivisie", Country: "Netherlands", Id: 23},
	{Name: "Süper Lig", Country: "Turkey", Id: 26},
	{Name: "Super League Greece", Country: "Greece", Id: 27},
	{Name: "Russian Premier League", Country: "Russia", Id: 30},
	{Name: "Primeira Liga", Country: "Portugal", Id: 32},
	{Name: "Ekstraklasa", Country: "Poland", Id: 36},
	{Name: "Belgian Pro League", Country: "Belgium", Id: 37},
	{Name: "NB I", Country: "Hungary", Id: 46},
	{Name: "Superliga", Country: "Denmark", Id: 50},
	{Name: "Austrian Bundesliga", Country: "Austria", Id: 56},
	{Name: "Swiss Super League", Country: "Switzerland", Id: 57},
	{Name: "Hrvatska NL", Country: "Croatia", Id: 63},
	{Name: "Czech First League", Country: "Czech Republic", Id: 66},
}

// Leagues lists every supported competition.
func Leagues() []League {
	out := make([]League, len(leagues))
	copy(out, leagues)
	return out
}

const maxSuggestions = 5

// ResolveLeague finds a league by display name, ignoring case and
// whitespace. unknown names come back as a NotFoundError carrying the
// closest known league names.
func ResolveLeague(name string) (League, error) {
	for _, league := range leagues {
		if textutil.MatchName(league.Name, name) {
			return league, nil
		}
	}

	names := make([]string, len(leagues))
	for i, league := range leagues {
		names[i] = league.Name
	}
	return League{}, &NotFoundError{
		Kind:        "league",
		Name:        name,
		Suggestions: textutil.RankSimilar(name, names, maxSuggestions),
	}
}
