package fund

import (
	"go.opentelemetry.io/otel"

	"tripfund/lib/restyutil"
)

var tracer = otel.Tracer("scrapers/fund")
var restyDumpOutput restyutil.Output

func SetRestyDumpOutput(out restyutil.Output) {
	restyDumpOutput = out
}
