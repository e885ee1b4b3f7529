package chain

import (
	"context"
	"fmt"

	"github.com/Vinamra-Agarwal/CareChain/internal/consensus"
	"github.com/Vinamra-Agarwal/CareChain/internal/ledger"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/logger"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/types"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MineBlock implements Service.
//
// The write lock is held for the whole validate, assemble, append and drain
// sequence. A round that is not validated leaves the pool untouched; a
// validated round drains only the accepted transactions and bumps the
// rejection counter of the others.
func (s *service) MineBlock(ctx context.Context, validatorID string) (result MiningResult) {
	ctx, span := s.tracer.Start(ctx, "chain.MineBlock", trace.WithAttributes(
		attribute.String("block.validator", validatorID),
	))
	defer span.End()

	ctx = logger.Derive(ctx, "block.validator", validatorID)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("mine block: %v", r)
			logger.Error(ctx, "block mining fault", "error", err)
			span.SetStatus(codes.Error, err.Error())

			result = MiningResult{
				Status:  MiningFailed,
				Message: "block mining failed",
				Error:   err.Error(),
			}
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		logger.Debug(ctx, "no pending transactions to mine")
		return MiningResult{
			Status:  MiningNoTransactions,
			Message: "no pending transactions",
		}
	}

	batch := make([]ledger.Transaction, len(s.pending))
	for i, entry := range s.pending {
		batch[i] = entry.tx
	}

	round := s.engine.ReachConsensus(ctx, batch)
	if round.Status != consensus.StatusValidated {
		span.SetStatus(codes.Error, "consensus not reached")
		logger.Warn(ctx, "consensus not reached", "pool.size", len(batch))

		return MiningResult{
			Status:          MiningConsensusFailed,
			Message:         "consensus not reached",
			ConsensusResult: &round,
		}
	}

	validated := types.NewSet(round.ValidatedIDs...)
	selected := make([]ledger.Transaction, 0, validated.Len())
	for _, tx := range batch {
		if validated.Has(tx.ID) {
			selected = append(selected, tx)
		}
	}

	latest := s.blocks[len(s.blocks)-1]
	number := uint64(len(s.blocks))

	block, blockHash, err := ledger.NewBlock(number, latest.Hash(), s.now(), selected, validatorID)
	if err != nil {
		logger.Error(ctx, "failed to assemble block", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return MiningResult{
			Status:          MiningFailed,
			Message:         "block assembly failed",
			ConsensusResult: &round,
			Error:           err.Error(),
		}
	}

	s.blocks = append(s.blocks, block)
	s.drain(validated, number)

	s.instruments.mined.Add(ctx, 1)
	s.instruments.committed.Add(ctx, int64(len(selected)))
	s.instruments.rejected.Add(ctx, int64(len(round.RejectedIDs)))

	span.SetAttributes(
		attribute.Int64("block.number", int64(number)),
		attribute.String("block.hash", blockHash),
		attribute.Int("block.transactions", len(selected)),
	)

	logger.Info(ctx, "block mined",
		"block.number", number,
		"block.hash", blockHash,
		"block.transactions", len(selected),
		"pool.rejected", len(round.RejectedIDs),
	)

	return MiningResult{
		Status:                MiningSuccess,
		Message:               fmt.Sprintf("block %d mined", number),
		BlockNumber:           number,
		BlockHash:             blockHash,
		TransactionsProcessed: len(selected),
		ConsensusResult:       &round,
	}
}

// drain removes committed transactions from the pool and marks the
// remaining ones as rejected once more. Callers must hold the write lock.
func (s *service) drain(committed types.Set[string], blockNumber uint64) {
	remaining := s.pending[:0]
	for _, entry := range s.pending {
		record := s.transactions[entry.tx.ID]

		if committed.Has(entry.tx.ID) {
			record.state = TransactionCommitted
			record.blockNumber = blockNumber
			record.pending = nil
			continue
		}

		entry.rejections++
		remaining = append(remaining, entry)
	}

	clear(s.pending[len(remaining):])
	s.pending = remaining
}
