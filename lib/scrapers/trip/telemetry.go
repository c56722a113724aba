package trip

import (
	"go.opentelemetry.io/otel"

	"tripfund/lib/restyutil"
)

var tracer = otel.Tracer("scrapers/trip")
var restyDumpOutput restyutil.Output

// SetRestyDumpOutput enables request/response dumps for every
// client created afterwards. Debug aid, off by default.
func SetRestyDumpOutput(out restyutil.Output) {
	restyDumpOutput = out
}
