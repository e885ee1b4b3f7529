package chain

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/Vinamra-Agarwal/CareChain/internal/chain"

type instruments struct {
	submitted metric.Int64Counter
	rejected  metric.Int64Counter
	committed metric.Int64Counter
	mined     metric.Int64Counter
	purged    metric.Int64Counter
}

// counter creates an Int64Counter, falling back to a no-op counter when the
// meter refuses the instrument.
func counter(meter metric.Meter, name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}

// newInstruments registers the chain counters on the global meter
// provider. Until telemetry is initialised the provider is a no-op.
func newInstruments() *instruments {
	meter := otel.Meter(instrumentationName)

	return &instruments{
		submitted: counter(meter, "carechain.transactions.submitted", "Transactions accepted into the pending pool"),
		rejected:  counter(meter, "carechain.transactions.rejected", "Transactions rejected by a consensus round"),
		committed: counter(meter, "carechain.transactions.committed", "Transactions included in a mined block"),
		mined:     counter(meter, "carechain.blocks.mined", "Blocks appended to the chain"),
		purged:    counter(meter, "carechain.transactions.purged", "Pending transactions removed by an operator purge"),
	}
}
