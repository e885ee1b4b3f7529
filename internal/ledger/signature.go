package ledger

import "github.com/Vinamra-Agarwal/CareChain/internal/merkle"

// signatureLength is the number of hex characters kept from the digest.
const signatureLength = 32

// Signer produces the signature stored on a transaction.
type Signer interface {
	Sign(sender, dataHash string) string
}

// Verifier checks the signature stored on a transaction.
type Verifier interface {
	Verify(tx Transaction) bool
}

// PlaceholderSignature implements both Signer and Verifier with the
// chain's legacy scheme: the first 32 hex characters of
// hash(sender ++ dataHash).
//
// It authenticates nothing. Anyone who knows the sender and data hash can
// produce a valid signature. A public-key scheme can replace it by
// satisfying the same two interfaces.
type PlaceholderSignature struct{}

var (
	_ Signer   = PlaceholderSignature{}
	_ Verifier = PlaceholderSignature{}
)

// Sign returns the truncated digest of sender followed by dataHash.
func (PlaceholderSignature) Sign(sender, dataHash string) string {
	return merkle.HashString(sender + dataHash)[:signatureLength]
}

// Verify recomputes the signature for tx and compares it with the stored one.
func (p PlaceholderSignature) Verify(tx Transaction) bool {
	return p.Sign(tx.Sender, tx.DataHash) == tx.Signature
}
