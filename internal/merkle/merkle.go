// Package merkle provides the content hashing used across the ledger and
// the pairwise Merkle folding that summarizes a block's transactions.
//
// Every digest is a lowercase hex-encoded SHA-256 sum. Merkle nodes hash the
// concatenation of their children's hex strings, not of the raw digests.
package merkle

import (
	"crypto/sha256"
	"encoding/hex"
)

// ZeroHash is the previous-hash value carried by the genesis block.
const ZeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

// Hash returns the hex-encoded SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashString returns the digest of the UTF-8 bytes of s.
func HashString(s string) string {
	return Hash([]byte(s))
}

// HashPair returns the digest of left followed by right.
func HashPair(left, right string) string {
	return HashString(left + right)
}

// Root folds the given leaf hashes into a single Merkle root.
//
// An empty input yields the digest of the empty byte string. A single leaf
// is its own root. On every level adjacent pairs are hashed together and an
// odd trailing node is paired with itself.
func Root(leaves []string) string {
	if len(leaves) == 0 {
		return Hash(nil)
	}

	level := make([]string, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		next := make([]string, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			right := level[i]
			if i+1 < len(level) {
				right = level[i+1]
			}

			next = append(next, HashPair(level[i], right))
		}

		level = next
	}

	return level[0]
}
