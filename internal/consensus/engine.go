// Package consensus implements the Proof-of-Authority validation of
// transactions and the quorum gate that decides whether a batch may be
// committed.
package consensus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/ledger"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/logger"

	"github.com/benbjohnson/clock"
)

// ErrNoValidators is returned by New when the validator set is empty.
var ErrNoValidators = errors.New("consensus requires at least one validator")

// Status is the outcome of a consensus round.
type Status string

const (
	StatusPending   Status = "pending"
	StatusValidated Status = "validated"
	StatusRejected  Status = "rejected"
)

// Result describes a consensus round over a batch of transactions.
//
// ValidatedIDs and RejectedIDs keep the order of the batch. Votes maps each
// validator to whether it approved the round.
type Result struct {
	Status        Status          `json:"status"`
	ValidatedIDs  []string        `json:"validatedTransactions"`
	RejectedIDs   []string        `json:"rejectedTransactions"`
	Votes         map[string]bool `json:"validatorVotes"`
	ConsensusTime time.Time       `json:"consensusTime"`
}

// Engine validates transactions and computes quorum outcomes for a fixed
// validator set. It keeps no state between rounds.
type Engine struct {
	validators         []string
	byzantineTolerance int
	quorumThreshold    int

	verifier ledger.Verifier
	voter    Voter
	clock    clock.Clock
}

type config struct {
	verifier ledger.Verifier
	voter    Voter
	clock    clock.Clock
}

// Option customizes an Engine.
type Option func(*config)

// WithVerifier replaces the placeholder signature check.
func WithVerifier(v ledger.Verifier) Option {
	return func(c *config) {
		c.verifier = v
	}
}

// WithVoter replaces the default voter, under which every validator approves.
func WithVoter(v Voter) Option {
	return func(c *config) {
		c.voter = v
	}
}

// WithClock sets the clock used to stamp results.
func WithClock(c clock.Clock) Option {
	return func(cfg *config) {
		cfg.clock = c
	}
}

// ByzantineTolerance returns f = max(1, floor((n-1)/3)) for n validators.
func ByzantineTolerance(n int) int {
	return max(1, (n-1)/3)
}

// QuorumThreshold returns n - f for n validators.
func QuorumThreshold(n int) int {
	return n - ByzantineTolerance(n)
}

// New creates an Engine for the given ordered validator set. The first
// validator is conventionally the primary.
func New(validators []string, opts ...Option) (*Engine, error) {
	if len(validators) == 0 {
		return nil, ErrNoValidators
	}

	cfg := config{
		verifier: ledger.PlaceholderSignature{},
		voter:    unanimousVoter{},
		clock:    clock.New(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Engine{
		validators:         slices.Clone(validators),
		byzantineTolerance: ByzantineTolerance(len(validators)),
		quorumThreshold:    QuorumThreshold(len(validators)),
		verifier:           cfg.verifier,
		voter:              cfg.voter,
		clock:              cfg.clock,
	}, nil
}

// Validators returns a copy of the validator set.
func (e *Engine) Validators() []string {
	return slices.Clone(e.validators)
}

// Primary returns the first validator of the set.
func (e *Engine) Primary() string {
	return e.validators[0]
}

// ByzantineTolerance returns the number of faulty validators tolerated.
func (e *Engine) ByzantineTolerance() int {
	return e.byzantineTolerance
}

// QuorumThreshold returns the number of approving validators a round needs.
func (e *Engine) QuorumThreshold() int {
	return e.quorumThreshold
}

// requiredPayloadFields lists the payload keys each type must carry.
var requiredPayloadFields = map[ledger.TransactionType][]string{
	ledger.PatientData: {ledger.PayloadDeviceID, ledger.PayloadDataType, ledger.PayloadEncryptedData},
	ledger.AccessGrant: {ledger.PayloadRequesterID, ledger.PayloadDataTypes, ledger.PayloadDuration},
}

// ValidateTransaction reports whether tx may be committed. It checks, in
// order, that the id and patient id are present, that the signature
// verifies, that the payload carries the fields its type requires, and that
// the transaction can be hashed into a block.
//
// A panic raised while checking (for instance by a custom Verifier) counts
// as a rejection.
func (e *Engine) ValidateTransaction(ctx context.Context, tx ledger.Transaction) (valid bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "transaction validation fault",
				"tx.id", tx.ID,
				"error", fmt.Sprint(r),
			)
			valid = false
		}
	}()

	if tx.ID == "" || tx.PatientID == "" {
		return false
	}

	if !e.verifier.Verify(tx) {
		return false
	}

	for _, field := range requiredPayloadFields[tx.Type] {
		if _, ok := tx.Payload[field]; !ok {
			return false
		}
	}

	if _, err := tx.Hash(); err != nil {
		logger.Warn(ctx, "transaction cannot be hashed",
			"tx.id", tx.ID,
			"error", err,
		)
		return false
	}

	return true
}

// ReachConsensus validates every transaction in batch and runs the quorum
// gate. The round is validated when the number of approving validators is
// at least the quorum threshold. Rejected transactions do not fail the
// round; they are only listed in RejectedIDs.
func (e *Engine) ReachConsensus(ctx context.Context, batch []ledger.Transaction) Result {
	result := Result{
		Status:        StatusPending,
		ValidatedIDs:  make([]string, 0, len(batch)),
		RejectedIDs:   make([]string, 0),
		Votes:         make(map[string]bool, len(e.validators)),
		ConsensusTime: e.clock.Now(),
	}

	for _, tx := range batch {
		if e.ValidateTransaction(ctx, tx) {
			result.ValidatedIDs = append(result.ValidatedIDs, tx.ID)
		} else {
			result.RejectedIDs = append(result.RejectedIDs, tx.ID)
		}
	}

	approvals := 0
	for _, v := range e.validators {
		approve := e.vote(ctx, v, batch, result.ValidatedIDs)
		result.Votes[v] = approve
		if approve {
			approvals++
		}
	}

	if approvals >= e.quorumThreshold {
		result.Status = StatusValidated
	} else {
		result.Status = StatusRejected
	}

	logger.Debug(ctx, "consensus round finished",
		"consensus.status", result.Status,
		"consensus.approvals", approvals,
		"consensus.threshold", e.quorumThreshold,
		"consensus.validated", len(result.ValidatedIDs),
		"consensus.rejected", len(result.RejectedIDs),
	)

	return result
}

// vote asks the voter for one validator's decision. A panicking voter
// counts as a rejection.
func (e *Engine) vote(ctx context.Context, validatorID string, batch []ledger.Transaction, validatedIDs []string) (approve bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "validator vote fault",
				"validator", validatorID,
				"error", fmt.Sprint(r),
			)
			approve = false
		}
	}()

	return e.voter.Vote(ctx, validatorID, batch, validatedIDs)
}
