package chain

import (
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/consensus"
	"github.com/Vinamra-Agarwal/CareChain/internal/ledger"
)

// SubmissionStatus is the outcome of SubmitTransaction.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionFailed    SubmissionStatus = "failed"
)

// SubmissionResult reports what happened to a submitted transaction.
type SubmissionResult struct {
	TransactionID string           `json:"transactionId"`
	Status        SubmissionStatus `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	Message       string           `json:"message,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// MiningStatus is the outcome of MineBlock.
type MiningStatus string

const (
	MiningSuccess         MiningStatus = "success"
	MiningNoTransactions  MiningStatus = "no_transactions"
	MiningConsensusFailed MiningStatus = "consensus_failed"
	MiningFailed          MiningStatus = "failed"
)

// MiningResult reports the outcome of a mining attempt. Block fields are
// only set on success; ConsensusResult is set whenever a round ran.
type MiningResult struct {
	Status                MiningStatus      `json:"status"`
	Message               string            `json:"message,omitempty"`
	BlockNumber           uint64            `json:"blockNumber,omitempty"`
	BlockHash             string            `json:"blockHash,omitempty"`
	TransactionsProcessed int               `json:"transactionsProcessed"`
	ConsensusResult       *consensus.Result `json:"consensusResult,omitempty"`
	Error                 string            `json:"error,omitempty"`
}

// BlockMined is the notification emitted after a successful mining cycle.
// Collaborators carry these field names verbatim.
type BlockMined struct {
	BlockNumber           uint64           `json:"blockNumber"`
	BlockHash             string           `json:"blockHash"`
	TransactionsProcessed int              `json:"transactionsProcessed"`
	ConsensusResult       consensus.Result `json:"consensusResult"`
}

// Notification converts a successful result into its outbound form. The
// boolean is false for any other status.
func (r MiningResult) Notification() (BlockMined, bool) {
	if r.Status != MiningSuccess || r.ConsensusResult == nil {
		return BlockMined{}, false
	}

	return BlockMined{
		BlockNumber:           r.BlockNumber,
		BlockHash:             r.BlockHash,
		TransactionsProcessed: r.TransactionsProcessed,
		ConsensusResult:       *r.ConsensusResult,
	}, true
}

// Status summarizes the chain.
type Status struct {
	TotalBlocks     int      `json:"totalBlocks"`
	PendingCount    int      `json:"pendingTransactions"`
	ContractCount   int      `json:"totalSmartContracts"`
	Validators      []string `json:"validators"`
	LatestBlockHash string   `json:"latestBlockHash"`
	Height          int      `json:"chainHeight"`
}

// HistoryEntry is one committed transaction of a patient.
type HistoryEntry struct {
	TransactionID string                 `json:"transactionId"`
	BlockNumber   uint64                 `json:"blockNumber"`
	Timestamp     time.Time              `json:"timestamp"`
	Type          ledger.TransactionType `json:"transactionType"`
	DataHash      string                 `json:"dataHash"`
}

// TransactionState tells where a known transaction currently is.
type TransactionState string

const (
	TransactionPending   TransactionState = "pending"
	TransactionCommitted TransactionState = "committed"
	TransactionPurged    TransactionState = "purged"
)

// TransactionRecord is a transaction together with its lifecycle state.
// BlockNumber is meaningful only for committed transactions; Rejections
// only for pending ones.
type TransactionRecord struct {
	Transaction ledger.Transaction `json:"transaction"`
	State       TransactionState   `json:"state"`
	BlockNumber uint64             `json:"blockNumber,omitempty"`
	Rejections  int                `json:"rejections,omitempty"`
}
