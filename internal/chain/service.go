// Package chain is the ledger core. It owns the block chain, the pending
// transaction pool and the registry of patient access contracts, and it
// serializes every mutation behind a single read/write lock.
package chain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/consensus"
	"github.com/Vinamra-Agarwal/CareChain/internal/contract"
	"github.com/Vinamra-Agarwal/CareChain/internal/ledger"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/types"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ErrDuplicateTransaction is reported when a submitted id is already known.
var ErrDuplicateTransaction = errors.New("transaction id already known")

// Service is the chain core used by the messaging boundary and the CLI.
type Service interface {
	// SubmitTransaction appends tx to the pending pool. No validation happens
	// here; transactions are validated when a block is mined.
	SubmitTransaction(ctx context.Context, tx ledger.Transaction) SubmissionResult

	// MineBlock runs a consensus round over the whole pending pool and, when
	// the round is validated, appends a block proposed by validatorID.
	MineBlock(ctx context.Context, validatorID string) MiningResult

	// PurgeRejected removes pending transactions that have been rejected by
	// at least minRejections mining rounds and returns their ids.
	PurgeRejected(ctx context.Context, minRejections int) []string

	// DeploySmartContract creates a new access contract for patientID.
	DeploySmartContract(ctx context.Context, patientID string) (string, error)

	GetSmartContract(contractID string) (*contract.SmartContract, bool)
	ContractsForPatient(patientID string) []string
	GetTransactionHistory(patientID string) []HistoryEntry
	GetTransaction(id string) (TransactionRecord, bool)
	PendingTransactions() []ledger.Transaction
	GetChainStatus() Status
	GetLatestBlock() ledger.Block
	GetBlock(number uint64) (ledger.Block, bool)
	VerifyChain() error
}

// pendingEntry is a transaction waiting in the pool.
type pendingEntry struct {
	tx         ledger.Transaction
	rejections int
}

// txRecord tracks every transaction ever submitted.
type txRecord struct {
	tx          ledger.Transaction
	state       TransactionState
	blockNumber uint64
	pending     *pendingEntry
}

type service struct {
	mu sync.RWMutex

	blocks       []ledger.Block
	pending      []*pendingEntry
	transactions map[string]*txRecord

	contracts          map[string]*contract.SmartContract
	contractsByPatient types.DefaultMap[string, []string]

	engine     *consensus.Engine
	validators []string

	clock       clock.Clock
	tracer      trace.Tracer
	instruments *instruments
}

// Compile-time check to ensure *service implements the Service interface.
var _ Service = (*service)(nil)

type config struct {
	clock            clock.Clock
	consensusOptions []consensus.Option
}

// Option customizes the chain core.
type Option func(*config)

// WithClock sets the clock used for block, consensus and contract times.
func WithClock(c clock.Clock) Option {
	return func(cfg *config) {
		cfg.clock = c
	}
}

// WithConsensusOptions forwards options to the consensus engine.
func WithConsensusOptions(opts ...consensus.Option) Option {
	return func(cfg *config) {
		cfg.consensusOptions = append(cfg.consensusOptions, opts...)
	}
}

// New creates a chain holding only the genesis block. validators is the
// ordered authority set; the first entry is the primary.
func New(validators []string, opts ...Option) (*service, error) {
	cfg := config{clock: clock.New()}
	for _, opt := range opts {
		opt(&cfg)
	}

	engineOpts := append([]consensus.Option{consensus.WithClock(cfg.clock)}, cfg.consensusOptions...)
	engine, err := consensus.New(validators, engineOpts...)
	if err != nil {
		return nil, err
	}

	return &service{
		blocks:             []ledger.Block{ledger.NewGenesisBlock(cfg.clock.Now())},
		transactions:       make(map[string]*txRecord),
		contracts:          make(map[string]*contract.SmartContract),
		contractsByPatient: types.NewDefaultMap[string](func() []string { return nil }),
		engine:             engine,
		validators:         engine.Validators(),
		clock:              cfg.clock,
		tracer:             otel.Tracer(instrumentationName),
		instruments:        newInstruments(),
	}, nil
}

// now returns the current time of the configured clock.
func (s *service) now() time.Time {
	return s.clock.Now()
}
