package ledger

import (
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/merkle"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/validator"

	"github.com/google/uuid"
)

// PatientDataInput holds the inputs of a PatientData transaction.
type PatientDataInput struct {
	PatientID     string `validate:"notblank"`
	DeviceID      string `validate:"notblank"`
	DataType      string `validate:"notblank"`
	EncryptedData string `validate:"required"`
	Sender        string `validate:"notblank"`
}

// AccessGrantInput holds the inputs of an AccessGrant transaction.
type AccessGrantInput struct {
	PatientID     string   `validate:"notblank"`
	RequesterID   string   `validate:"notblank"`
	DataTypes     []string `validate:"min=1,dive,notblank"`
	DurationHours float64  `validate:"gt=0,lte=2562047"`
	Sender        string   `validate:"notblank"`
}

// DeviceRegistrationInput holds the inputs of a DeviceRegistration transaction.
type DeviceRegistrationInput struct {
	PatientID  string `validate:"notblank"`
	DeviceID   string `validate:"notblank"`
	DeviceType string `validate:"notblank"`
	Sender     string `validate:"notblank"`
}

// MedicalRecordInput holds the inputs of a MedicalRecord transaction.
type MedicalRecordInput struct {
	PatientID     string `validate:"notblank"`
	RecordType    string `validate:"notblank"`
	EncryptedData string `validate:"required"`
	Sender        string `validate:"notblank"`
}

// ConsentUpdateInput holds the inputs of a ConsentUpdate transaction.
type ConsentUpdateInput struct {
	PatientID   string `validate:"notblank"`
	ConsentType string `validate:"notblank"`
	Granted     bool
	Sender      string `validate:"notblank"`
}

// newID returns a chain-unique transaction id with the given prefix parts.
func newID(prefix string, parts ...string) string {
	id := prefix
	for _, p := range parts {
		id += "_" + p
	}
	return id + "_" + uuid.Must(uuid.NewV7()).String()
}

// build assembles a signed transaction around an already hashed payload.
func build(id string, typ TransactionType, patientID, dataHash string, payload map[string]any, sender string) Transaction {
	return Transaction{
		ID:        id,
		Type:      typ,
		PatientID: patientID,
		DataHash:  dataHash,
		Payload:   payload,
		Timestamp: time.Now(),
		Sender:    sender,
		Signature: PlaceholderSignature{}.Sign(sender, dataHash),
		Fee:       DefaultFee,
	}
}

// NewPatientDataTransaction builds a signed PatientData transaction. The data
// hash is the digest of the encrypted reading.
func NewPatientDataTransaction(in PatientDataInput) (Transaction, error) {
	if err := validator.Validate(in); err != nil {
		return Transaction{}, err
	}

	payload := map[string]any{
		PayloadDeviceID:      in.DeviceID,
		PayloadDataType:      in.DataType,
		PayloadEncryptedData: in.EncryptedData,
	}

	return build(
		newID("tx", in.PatientID),
		PatientData,
		in.PatientID,
		merkle.HashString(in.EncryptedData),
		payload,
		in.Sender,
	), nil
}

// NewAccessGrantTransaction builds a signed AccessGrant transaction. The data
// hash is the digest of the canonical payload.
func NewAccessGrantTransaction(in AccessGrantInput) (Transaction, error) {
	if err := validator.Validate(in); err != nil {
		return Transaction{}, err
	}

	dataTypes := make([]string, len(in.DataTypes))
	copy(dataTypes, in.DataTypes)

	payload := map[string]any{
		PayloadRequesterID: in.RequesterID,
		PayloadDataTypes:   dataTypes,
		PayloadDuration:    in.DurationHours,
	}

	dataHash, err := HashPayload(payload)
	if err != nil {
		return Transaction{}, err
	}

	return build(
		newID("access", in.PatientID, in.RequesterID),
		AccessGrant,
		in.PatientID,
		dataHash,
		payload,
		in.Sender,
	), nil
}

// NewDeviceRegistrationTransaction builds a signed DeviceRegistration transaction.
func NewDeviceRegistrationTransaction(in DeviceRegistrationInput) (Transaction, error) {
	if err := validator.Validate(in); err != nil {
		return Transaction{}, err
	}

	payload := map[string]any{
		PayloadDeviceID:   in.DeviceID,
		PayloadDeviceType: in.DeviceType,
	}

	dataHash, err := HashPayload(payload)
	if err != nil {
		return Transaction{}, err
	}

	return build(
		newID("device", in.PatientID, in.DeviceID),
		DeviceRegistration,
		in.PatientID,
		dataHash,
		payload,
		in.Sender,
	), nil
}

// NewMedicalRecordTransaction builds a signed MedicalRecord transaction. The
// data hash is the digest of the encrypted record.
func NewMedicalRecordTransaction(in MedicalRecordInput) (Transaction, error) {
	if err := validator.Validate(in); err != nil {
		return Transaction{}, err
	}

	payload := map[string]any{
		PayloadRecordType:    in.RecordType,
		PayloadEncryptedData: in.EncryptedData,
	}

	return build(
		newID("record", in.PatientID),
		MedicalRecord,
		in.PatientID,
		merkle.HashString(in.EncryptedData),
		payload,
		in.Sender,
	), nil
}

// NewConsentUpdateTransaction builds a signed ConsentUpdate transaction.
func NewConsentUpdateTransaction(in ConsentUpdateInput) (Transaction, error) {
	if err := validator.Validate(in); err != nil {
		return Transaction{}, err
	}

	payload := map[string]any{
		PayloadConsentType: in.ConsentType,
		PayloadGranted:     in.Granted,
	}

	dataHash, err := HashPayload(payload)
	if err != nil {
		return Transaction{}, err
	}

	return build(
		newID("consent", in.PatientID),
		ConsentUpdate,
		in.PatientID,
		dataHash,
		payload,
		in.Sender,
	), nil
}
