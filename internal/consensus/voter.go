package consensus

import (
	"context"

	"github.com/Vinamra-Agarwal/CareChain/internal/ledger"
)

// Voter decides whether a validator approves a round.
//
// The engine asks once per validator, after the batch has been partitioned.
// A stricter quorum can be layered in by supplying a Voter through WithVoter;
// the Result shape does not change.
type Voter interface {
	Vote(ctx context.Context, validatorID string, batch []ledger.Transaction, validatedIDs []string) bool
}

// VoterFunc adapts a plain function to the Voter interface.
type VoterFunc func(ctx context.Context, validatorID string, batch []ledger.Transaction, validatedIDs []string) bool

// Vote calls f.
func (f VoterFunc) Vote(ctx context.Context, validatorID string, batch []ledger.Transaction, validatedIDs []string) bool {
	return f(ctx, validatorID, batch, validatedIDs)
}

// unanimousVoter models every validator being present and approving.
type unanimousVoter struct{}

func (unanimousVoter) Vote(context.Context, string, []ledger.Transaction, []string) bool {
	return true
}
