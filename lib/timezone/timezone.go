package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/London")
	if err != nil {
		panic(err)
	}
}

// force timezone to be in London because sometimes our servers
// end up in other regions which will cause disturbances when
// manipulating dates based on <time.Time>.Year()/Month()/Day()/Hour()/...
// the stats site publishes everything relative to UK time.
func Now() time.Time {
	return time.Now().In(Location)
}
