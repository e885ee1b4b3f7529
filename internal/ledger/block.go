package ledger

import (
	"encoding/json"
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/merkle"
)

// Genesis block constants.
const (
	GenesisValidator = "genesis"
	GenesisSignature = "genesis_signature"
)

// Block is an ordered, hash-linked batch of accepted transactions.
type Block struct {
	Number       uint64        `json:"blockNumber"`
	PreviousHash string        `json:"previousHash"`
	Timestamp    time.Time     `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
	MerkleRoot   string        `json:"merkleRoot"`
	Validator    string        `json:"validator"`
	Signature    string        `json:"signature"`
	Nonce        uint64        `json:"nonce"`
}

// blockHeader is the part of a block covered by its hash. Fields are
// declared in key order so the encoding is canonical.
type blockHeader struct {
	BlockNumber      uint64  `json:"blockNumber"`
	MerkleRoot       string  `json:"merkleRoot"`
	Nonce            uint64  `json:"nonce"`
	PreviousHash     string  `json:"previousHash"`
	Timestamp        float64 `json:"timestamp"`
	TransactionCount int     `json:"transactionCount"`
	Validator        string  `json:"validator"`
}

// Hash returns the block digest. Transaction bodies are covered only through
// the Merkle root and their count.
func (b Block) Hash() string {
	// Every header field is a string, an integer or a finite float, so
	// encoding cannot fail.
	data, _ := json.Marshal(blockHeader{
		BlockNumber:      b.Number,
		MerkleRoot:       b.MerkleRoot,
		Nonce:            b.Nonce,
		PreviousHash:     b.PreviousHash,
		Timestamp:        unixSeconds(b.Timestamp),
		TransactionCount: len(b.Transactions),
		Validator:        b.Validator,
	})

	return merkle.Hash(data)
}

// ComputeMerkleRoot folds the hashes of the block's transactions.
func (b Block) ComputeMerkleRoot() (string, error) {
	return MerkleRoot(b.Transactions)
}

// MerkleRoot folds the hashes of txs in order.
func MerkleRoot(txs []Transaction) (string, error) {
	leaves := make([]string, 0, len(txs))
	for _, tx := range txs {
		h, err := tx.Hash()
		if err != nil {
			return "", err
		}

		leaves = append(leaves, h)
	}

	return merkle.Root(leaves), nil
}

// NewGenesisBlock returns block zero: no transactions, a zeroed previous
// hash and the fixed genesis validator and signature.
func NewGenesisBlock(ts time.Time) Block {
	return Block{
		Number:       0,
		PreviousHash: merkle.ZeroHash,
		Timestamp:    ts,
		Transactions: []Transaction{},
		MerkleRoot:   merkle.Root(nil),
		Validator:    GenesisValidator,
		Signature:    GenesisSignature,
	}
}

// NewBlock assembles a block on top of a parent hash. It computes the Merkle
// root of txs and signs the block as hash(validator ++ blockHash).
//
// The returned string is the block hash.
func NewBlock(number uint64, previousHash string, ts time.Time, txs []Transaction, validatorID string) (Block, string, error) {
	root, err := MerkleRoot(txs)
	if err != nil {
		return Block{}, "", err
	}

	block := Block{
		Number:       number,
		PreviousHash: previousHash,
		Timestamp:    ts,
		Transactions: txs,
		MerkleRoot:   root,
		Validator:    validatorID,
	}

	blockHash := block.Hash()
	block.Signature = merkle.HashString(validatorID + blockHash)

	return block, blockHash, nil
}
