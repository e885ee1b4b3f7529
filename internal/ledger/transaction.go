// Package ledger defines the data model of the chain: transactions, blocks
// and the deterministic hashes that bind them together.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/merkle"

	"github.com/shopspring/decimal"
)

// ErrUnhashable is returned when a transaction cannot be rendered into its
// canonical form, typically because its payload holds a value with no JSON
// representation.
var ErrUnhashable = errors.New("transaction cannot be hashed")

// TransactionType names the kind of record a transaction carries.
type TransactionType string

const (
	PatientData        TransactionType = "patient_data"
	DeviceRegistration TransactionType = "device_registration"
	AccessGrant        TransactionType = "access_grant"
	MedicalRecord      TransactionType = "medical_record"
	ConsentUpdate      TransactionType = "consent_update"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case PatientData, DeviceRegistration, AccessGrant, MedicalRecord, ConsentUpdate:
		return true
	}
	return false
}

// Payload keys understood by the construction helpers and the consensus checks.
const (
	PayloadDeviceID      = "deviceId"
	PayloadDeviceType    = "deviceType"
	PayloadDataType      = "dataType"
	PayloadEncryptedData = "encryptedData"
	PayloadRequesterID   = "requesterId"
	PayloadDataTypes     = "dataTypes"
	PayloadDuration      = "duration"
	PayloadRecordType    = "recordType"
	PayloadConsentType   = "consentType"
	PayloadGranted       = "granted"
)

// DefaultFee is the fee charged when a transaction does not specify one.
var DefaultFee = decimal.RequireFromString("0.001")

// Transaction is the atomic unit submitted to the chain. It is treated as
// immutable once created.
type Transaction struct {
	ID        string          `json:"transactionId"`
	Type      TransactionType `json:"transactionType"`
	PatientID string          `json:"patientId"`
	DataHash  string          `json:"dataHash"`
	Payload   map[string]any  `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
	Sender    string          `json:"sender"`
	Signature string          `json:"signature"`
	Fee       decimal.Decimal `json:"fee"`
}

// unixSeconds renders t as fractional seconds since the epoch.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// Hash returns the digest of the transaction's canonical form: every field
// rendered as JSON with sorted keys and the timestamp as fractional epoch
// seconds. Any change to any field yields a different digest.
func (tx Transaction) Hash() (string, error) {
	canonical := map[string]any{
		"transactionId":   tx.ID,
		"transactionType": string(tx.Type),
		"patientId":       tx.PatientID,
		"dataHash":        tx.DataHash,
		"payload":         tx.Payload,
		"timestamp":       unixSeconds(tx.Timestamp),
		"sender":          tx.Sender,
		"signature":       tx.Signature,
		"fee":             tx.Fee.String(),
	}

	b, err := json.Marshal(canonical)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnhashable, tx.ID, err)
	}

	return merkle.Hash(b), nil
}

// HashPayload returns the digest of v rendered as JSON with sorted map keys.
func HashPayload(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnhashable, err)
	}

	return merkle.Hash(b), nil
}
