package chain

import (
	"errors"
	"fmt"

	"github.com/Vinamra-Agarwal/CareChain/internal/merkle"
)

var (
	// ErrBrokenLink is returned when a block does not reference its parent's hash.
	ErrBrokenLink = errors.New("block does not link to its parent")

	// ErrMerkleMismatch is returned when a block's Merkle root does not match its transactions.
	ErrMerkleMismatch = errors.New("block merkle root does not match its transactions")

	// ErrBadSignature is returned when a block signature does not match its validator and hash.
	ErrBadSignature = errors.New("block signature does not match")

	// ErrBadNumber is returned when a block number does not match its position.
	ErrBadNumber = errors.New("block number does not match its position")
)

// VerifyChain implements Service. It recomputes the links, Merkle roots and
// signatures of every block after genesis.
func (s *service) VerifyChain() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := 1; i < len(s.blocks); i++ {
		parent, block := s.blocks[i-1], s.blocks[i]

		if block.Number != uint64(i) {
			return fmt.Errorf("block %d: %w", i, ErrBadNumber)
		}

		if block.PreviousHash != parent.Hash() {
			return fmt.Errorf("block %d: %w", i, ErrBrokenLink)
		}

		root, err := block.ComputeMerkleRoot()
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		if root != block.MerkleRoot {
			return fmt.Errorf("block %d: %w", i, ErrMerkleMismatch)
		}

		if block.Signature != merkle.HashString(block.Validator+block.Hash()) {
			return fmt.Errorf("block %d: %w", i, ErrBadSignature)
		}
	}

	return nil
}
