package chain

import (
	"context"
	"fmt"

	"github.com/Vinamra-Agarwal/CareChain/internal/contract"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/logger"

	"github.com/google/uuid"
)

// newContractID builds a contract id for patientID. The uuid suffix keeps
// ids unique when several contracts are deployed within the same second.
func newContractID(patientID string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("contract_%s_%s", patientID, id.String()), nil
}

// DeploySmartContract implements Service. A new contract is created on every
// call, even when the patient already owns one.
func (s *service) DeploySmartContract(ctx context.Context, patientID string) (contractID string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("deploy smart contract: %v", r)
			logger.Error(ctx, "smart contract deployment fault", "patient.id", patientID, "error", err)
		}
	}()

	contractID, err = newContractID(patientID)
	if err != nil {
		return "", err
	}

	c := contract.New(contractID, patientID, contract.WithClock(s.clock))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.contracts[contractID] = c
	s.contractsByPatient.Set(patientID, append(s.contractsByPatient.Get(patientID), contractID))

	logger.Info(ctx, "smart contract deployed",
		"contract.id", contractID,
		"patient.id", patientID,
	)

	return contractID, nil
}

// GetSmartContract implements Service.
func (s *service) GetSmartContract(contractID string) (*contract.SmartContract, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contracts[contractID]
	return c, ok
}

// ContractsForPatient implements Service. Ids are returned in deployment order.
func (s *service) ContractsForPatient(patientID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, _ := s.contractsByPatient.Lookup(patientID)
	return append([]string{}, ids...)
}
