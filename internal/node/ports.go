package node

import (
	"context"
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/chain"
	"github.com/Vinamra-Agarwal/CareChain/internal/ledger"
)

// Chain is the part of the ledger core the node drives.
type Chain interface {
	SubmitTransaction(ctx context.Context, tx ledger.Transaction) chain.SubmissionResult
	MineBlock(ctx context.Context, validatorID string) chain.MiningResult
	PurgeRejected(ctx context.Context, minRejections int) []string
}

// Subscriber delivers the events addressed to a layer.
type Subscriber interface {
	// Subscribe starts delivering events for layer. The channel is closed
	// when ctx is done or the subscription ends.
	Subscribe(ctx context.Context, layer Layer) (<-chan Event, error)
}

// Publisher sends an event to its target layer.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// IdempotencyGuard makes sure an inbound event is handled by one node only,
// even when several nodes share a bus or an event is delivered twice.
type IdempotencyGuard interface {
	// ClaimEvent reserves eventID for ttl. It returns false when the event
	// has already been claimed.
	ClaimEvent(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}

// nopGuard claims every event.
type nopGuard struct{}

func (nopGuard) ClaimEvent(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}
