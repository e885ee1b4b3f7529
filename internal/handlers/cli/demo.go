package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Vinamra-Agarwal/CareChain/internal/chain"
	"github.com/Vinamra-Agarwal/CareChain/internal/contract"
	"github.com/Vinamra-Agarwal/CareChain/internal/ledger"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// demoReport is the JSON document printed by the demo command.
type demoReport struct {
	ContractID   string                   `json:"contractId"`
	Grant        contract.GrantResult     `json:"grant"`
	Submissions  []chain.SubmissionResult `json:"submissions"`
	Mining       chain.MiningResult       `json:"mining"`
	Status       chain.Status             `json:"status"`
	History      []chain.HistoryEntry     `json:"history"`
	AccessChecks map[string]bool          `json:"accessChecks"`
	ChainValid   bool                     `json:"chainValid"`
}

// demoCommand plays a full cycle on the in-process chain: it deploys a
// contract, grants access, submits valid readings plus one malformed
// transaction, mines a block and prints what happened.
//
//	carechain demo --patient patient_001
func demoCommand(c chain.Service) *cli.Command {
	return &cli.Command{
		Name:        "demo",
		Description: "Runs a submission and mining round on an in-process chain and prints the outcome as JSON.",
		Usage:       "Demonstrates contracts, submission, consensus and mining without a message bus.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "patient",
				Usage: "Patient identifier used by the demo transactions",
				Value: "patient_001",
			},
			&cli.StringFlag{
				Name:  "requester",
				Usage: "Clinician granted access to the patient's data",
				Value: "dr_smith",
			},
			&cli.StringFlag{
				Name:  "validator",
				Usage: "Validator proposing the block (defaults to the primary validator)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Minimum level of log lines written next to the report",
				Value: "error",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// Logs share stdout with the report.
			if err := logger.SetLevel(cmd.String("log-level")); err != nil {
				return err
			}

			report, err := runDemo(ctx, c, cmd.String("patient"), cmd.String("requester"), cmd.String("validator"))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.Root().Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
}

func runDemo(ctx context.Context, c chain.Service, patientID, requesterID, validatorID string) (demoReport, error) {
	report := demoReport{AccessChecks: make(map[string]bool)}

	if validatorID == "" {
		validators := c.GetChainStatus().Validators
		if len(validators) > 0 {
			validatorID = validators[0]
		}
	}

	contractID, err := c.DeploySmartContract(ctx, patientID)
	if err != nil {
		return report, fmt.Errorf("deploy contract: %w", err)
	}
	report.ContractID = contractID

	sc, _ := c.GetSmartContract(contractID)
	report.Grant, err = sc.GrantAccess(requesterID, []string{"heart_rate", "blood_pressure"}, 24)
	if err != nil {
		return report, fmt.Errorf("grant access: %w", err)
	}

	txs, err := demoTransactions(patientID, requesterID)
	if err != nil {
		return report, err
	}

	for _, tx := range txs {
		report.Submissions = append(report.Submissions, c.SubmitTransaction(ctx, tx))
	}

	report.Mining = c.MineBlock(ctx, validatorID)
	report.Status = c.GetChainStatus()
	report.History = c.GetTransactionHistory(patientID)
	report.ChainValid = c.VerifyChain() == nil

	for _, dataType := range []string{"heart_rate", "blood_pressure", "genome"} {
		report.AccessChecks[dataType] = sc.ValidateAccess(requesterID, dataType)
	}

	return report, nil
}

// demoTransactions returns three well-formed readings, an access grant and
// a PatientData transaction missing its payload.
func demoTransactions(patientID, requesterID string) ([]ledger.Transaction, error) {
	readings := []struct{ device, dataType, value string }{
		{"hr_monitor_01", "heart_rate", "72"},
		{"bp_cuff_01", "blood_pressure", "120/80"},
		{"hr_monitor_01", "heart_rate", "75"},
	}

	txs := make([]ledger.Transaction, 0, len(readings)+2)
	for _, r := range readings {
		tx, err := ledger.NewPatientDataTransaction(ledger.PatientDataInput{
			PatientID:     patientID,
			DeviceID:      r.device,
			DataType:      r.dataType,
			EncryptedData: "enc:" + r.value,
			Sender:        "gateway_001",
		})
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	grant, err := ledger.NewAccessGrantTransaction(ledger.AccessGrantInput{
		PatientID:     patientID,
		RequesterID:   requesterID,
		DataTypes:     []string{"heart_rate", "blood_pressure"},
		DurationHours: 24,
		Sender:        patientID,
	})
	if err != nil {
		return nil, err
	}
	txs = append(txs, grant)

	malformed := txs[0]
	malformed.ID = malformed.ID + "_malformed"
	malformed.Payload = map[string]any{}
	txs = append(txs, malformed)

	return txs, nil
}
