package fbref

import (
	"fmt"
	"time"

	"footstats/lib/timezone"
)

// SeasonFor returns the season label covering the given moment, like
// "2023-2024". european seasons roll over in july.
func SeasonFor(now time.Time) string {
	year := now.Year()
	if now.Month() >= time.July {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

// CurrentSeason returns the season label for the ongoing season, or
// if in the summer window, the upcoming one.
func CurrentSeason() string {
	return SeasonFor(timezone.Now())
}
