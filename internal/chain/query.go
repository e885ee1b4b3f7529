package chain

import (
	"slices"

	"github.com/Vinamra-Agarwal/CareChain/internal/ledger"
)

// cloneBlock copies the transaction slice so callers cannot alter the chain.
func cloneBlock(b ledger.Block) ledger.Block {
	b.Transactions = slices.Clone(b.Transactions)
	return b
}

// GetTransactionHistory implements Service. Entries follow block order and,
// within a block, transaction order.
func (s *service) GetTransactionHistory(patientID string) []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]HistoryEntry, 0)
	for _, block := range s.blocks {
		for _, tx := range block.Transactions {
			if tx.PatientID != patientID {
				continue
			}

			history = append(history, HistoryEntry{
				TransactionID: tx.ID,
				BlockNumber:   block.Number,
				Timestamp:     tx.Timestamp,
				Type:          tx.Type,
				DataHash:      tx.DataHash,
			})
		}
	}

	return history
}

// GetTransaction implements Service.
func (s *service) GetTransaction(id string) (TransactionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.transactions[id]
	if !ok {
		return TransactionRecord{}, false
	}

	out := TransactionRecord{
		Transaction: record.tx,
		State:       record.state,
	}

	switch record.state {
	case TransactionCommitted:
		out.BlockNumber = record.blockNumber
	case TransactionPending:
		out.Rejections = record.pending.rejections
	}

	return out, true
}

// PendingTransactions implements Service. The pool is returned in FIFO order.
func (s *service) PendingTransactions() []ledger.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := make([]ledger.Transaction, len(s.pending))
	for i, entry := range s.pending {
		txs[i] = entry.tx
	}

	return txs
}

// GetChainStatus implements Service.
func (s *service) GetChainStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		TotalBlocks:     len(s.blocks),
		PendingCount:    len(s.pending),
		ContractCount:   len(s.contracts),
		Validators:      slices.Clone(s.validators),
		LatestBlockHash: s.blocks[len(s.blocks)-1].Hash(),
		Height:          len(s.blocks) - 1,
	}
}

// GetLatestBlock implements Service.
func (s *service) GetLatestBlock() ledger.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneBlock(s.blocks[len(s.blocks)-1])
}

// GetBlock implements Service.
func (s *service) GetBlock(number uint64) (ledger.Block, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if number >= uint64(len(s.blocks)) {
		return ledger.Block{}, false
	}

	return cloneBlock(s.blocks[number]), true
}
