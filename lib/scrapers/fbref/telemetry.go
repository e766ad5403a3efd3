package fbref

import (
	"footstats/lib/restyutil"
	"footstats/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

var tracer = telemetry.Tracer("footstats.lib.scrapers.fbref")
var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput makes every client constructed afterwards
// dump its http traffic into the given output.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

func restyutilInstrument(client *resty.Client) {
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)
}
