package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureTransaction() Transaction {
	return Transaction{
		ID:        "tx_patient_001_a",
		Type:      PatientData,
		PatientID: "patient_001",
		DataHash:  "d1",
		Payload: map[string]any{
			PayloadDeviceID:      "device_1",
			PayloadDataType:      "heart_rate",
			PayloadEncryptedData: "cipher",
		},
		Timestamp: time.Unix(1_700_000_000, 250_000_000),
		Sender:    "gateway_1",
		Signature: "sig",
		Fee:       DefaultFee,
	}
}

func TestTransactionType_IsValid(t *testing.T) {
	for _, typ := range []TransactionType{PatientData, DeviceRegistration, AccessGrant, MedicalRecord, ConsentUpdate} {
		assert.True(t, typ.IsValid(), "type %s", typ)
	}

	assert.False(t, TransactionType("unknown").IsValid())
	assert.False(t, TransactionType("").IsValid())
}

func TestTransaction_Hash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		tx := fixtureTransaction()

		first, err := tx.Hash()
		require.NoError(t, err)
		second, err := fixtureTransaction().Hash()
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, first, 64)
	})

	t.Run("every field change changes the hash", func(t *testing.T) {
		base, err := fixtureTransaction().Hash()
		require.NoError(t, err)

		mutations := map[string]func(tx *Transaction){
			"id":        func(tx *Transaction) { tx.ID = "other" },
			"type":      func(tx *Transaction) { tx.Type = MedicalRecord },
			"patient":   func(tx *Transaction) { tx.PatientID = "patient_002" },
			"data hash": func(tx *Transaction) { tx.DataHash = "d2" },
			"payload":   func(tx *Transaction) { tx.Payload = map[string]any{"k": "v"} },
			"timestamp": func(tx *Transaction) { tx.Timestamp = tx.Timestamp.Add(time.Millisecond) },
			"sender":    func(tx *Transaction) { tx.Sender = "gateway_2" },
			"signature": func(tx *Transaction) { tx.Signature = "other" },
			"fee":       func(tx *Transaction) { tx.Fee = DefaultFee.Add(DefaultFee) },
		}

		for name, mutate := range mutations {
			tx := fixtureTransaction()
			mutate(&tx)

			h, err := tx.Hash()
			require.NoError(t, err, name)
			assert.NotEqual(t, base, h, "changing %s must change the hash", name)
		}
	})

	t.Run("payload key order does not matter", func(t *testing.T) {
		a := fixtureTransaction()
		b := fixtureTransaction()
		b.Payload = map[string]any{
			PayloadEncryptedData: "cipher",
			PayloadDataType:      "heart_rate",
			PayloadDeviceID:      "device_1",
		}

		ha, err := a.Hash()
		require.NoError(t, err)
		hb, err := b.Hash()
		require.NoError(t, err)
		assert.Equal(t, ha, hb)
	})

	t.Run("unencodable payload is reported", func(t *testing.T) {
		tx := fixtureTransaction()
		tx.Payload = map[string]any{"callback": func() {}}

		_, err := tx.Hash()
		assert.ErrorIs(t, err, ErrUnhashable)
	})
}

func TestHashPayload(t *testing.T) {
	h1, err := HashPayload(map[string]any{"b": 1, "a": 2})
	require.NoError(t, err)
	h2, err := HashPayload(map[string]any{"a": 2, "b": 1})
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	_, err = HashPayload(make(chan int))
	assert.ErrorIs(t, err, ErrUnhashable)
}

func TestPlaceholderSignature(t *testing.T) {
	sig := PlaceholderSignature{}

	t.Run("truncated to 32 hex characters", func(t *testing.T) {
		assert.Len(t, sig.Sign("gateway_1", "abc"), 32)
	})

	t.Run("round trip", func(t *testing.T) {
		tx := fixtureTransaction()
		tx.Signature = sig.Sign(tx.Sender, tx.DataHash)

		assert.True(t, sig.Verify(tx))
	})

	t.Run("tampered data hash fails", func(t *testing.T) {
		tx := fixtureTransaction()
		tx.Signature = sig.Sign(tx.Sender, tx.DataHash)
		tx.DataHash = "tampered"

		assert.False(t, sig.Verify(tx))
	})

	t.Run("known value", func(t *testing.T) {
		// sha256("alice" + "bob")[:32]
		assert.Equal(t, "a83ab2505ace9a8705ea2f0f4187087d", sig.Sign("alice", "bob"))
	})
}
