package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/Vinamra-Agarwal/CareChain/internal/chain"
	"github.com/Vinamra-Agarwal/CareChain/internal/node"
	nodemocks "github.com/Vinamra-Agarwal/CareChain/internal/node/mocks"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var testValidators = []string{"validator_hospital_001", "validator_hospital_002", "validator_research_center"}

func newChain(t *testing.T) chain.Service {
	t.Helper()

	c, err := chain.New(testValidators)
	require.NoError(t, err)

	return c
}

// factory returns a NodeFactory handing out n.
func factory(n node.Service) NodeFactory {
	return func(context.Context) (node.Service, error) { return n, nil }
}

func TestRun(t *testing.T) {
	originalArgs := os.Args
	t.Cleanup(func() { os.Args = originalArgs })

	t.Run("help", func(t *testing.T) {
		os.Args = []string{"carechain", "--help"}

		err := Run(t.Context(), newChain(t), factory(nodemocks.NewService(t)))

		assert.NoError(t, err)
	})

	t.Run("registers every command", func(t *testing.T) {
		app := newApp(newChain(t), factory(nodemocks.NewService(t)))

		names := make([]string, 0, len(app.Commands))
		for _, cmd := range app.Commands {
			names = append(names, cmd.Name)
		}

		assert.ElementsMatch(t, []string{"start", "demo"}, names)
	})

	t.Run("start failure is returned", func(t *testing.T) {
		n := nodemocks.NewService(t)
		n.EXPECT().Start(mock.Anything).Return(assert.AnError).Once()

		os.Args = []string{"carechain", "start"}

		err := Run(t.Context(), newChain(t), factory(n))

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestStartNodeCommand(t *testing.T) {
	t.Run("metadata", func(t *testing.T) {
		cmd := startNodeCommand(factory(nodemocks.NewService(t)))

		assert.Equal(t, "start", cmd.Name)
		assert.Empty(t, cmd.Flags)
		assert.NotNil(t, cmd.Action)
	})

	t.Run("factory failure is returned", func(t *testing.T) {
		failing := func(context.Context) (node.Service, error) { return nil, assert.AnError }

		err := newApp(newChain(t), failing).Run(t.Context(), []string{"carechain", "start"})

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("closes the node when the context ends", func(t *testing.T) {
		n := nodemocks.NewService(t)
		ctx, cancel := context.WithCancel(t.Context())

		n.EXPECT().Start(mock.Anything).Run(func(context.Context) { cancel() }).Return(nil).Once()
		n.EXPECT().Close().Return().Once()

		app := newApp(newChain(t), factory(n))

		assert.NoError(t, app.Run(ctx, []string{"carechain", "start"}))
	})
}

func TestDemoCommand(t *testing.T) {
	t.Cleanup(func() { _ = logger.SetLevel("info") })

	c := newChain(t)
	app := newApp(c, factory(nodemocks.NewService(t)))

	var out bytes.Buffer
	app.Writer = &out

	require.NoError(t, app.Run(t.Context(), []string{"carechain", "demo", "--patient", "patient_042", "--requester", "dr_jones"}))

	var report demoReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))

	t.Run("contract and grant", func(t *testing.T) {
		assert.Contains(t, report.ContractID, "contract_patient_042_")
		assert.True(t, report.Grant.Granted)
		assert.True(t, report.AccessChecks["heart_rate"])
		assert.True(t, report.AccessChecks["blood_pressure"])
		assert.False(t, report.AccessChecks["genome"])
	})

	t.Run("valid transactions are mined and the malformed one stays pending", func(t *testing.T) {
		require.Len(t, report.Submissions, 5)
		for _, s := range report.Submissions {
			assert.Equal(t, chain.SubmissionSubmitted, s.Status)
		}

		assert.Equal(t, chain.MiningSuccess, report.Mining.Status)
		assert.Equal(t, 4, report.Mining.TransactionsProcessed)
		assert.Equal(t, 1, report.Status.PendingCount)
		assert.Equal(t, 1, report.Status.Height)
		assert.Len(t, report.History, 4)
		assert.True(t, report.ChainValid)
	})

	t.Run("block proposed by the primary validator", func(t *testing.T) {
		assert.Equal(t, testValidators[0], c.GetLatestBlock().Validator)
	})

	t.Run("log lines below error stay off the report stream", func(t *testing.T) {
		assert.Equal(t, zapcore.ErrorLevel, logger.Level())
	})

	t.Run("log level can be lowered", func(t *testing.T) {
		app := newApp(newChain(t), factory(nodemocks.NewService(t)))
		app.Writer = &bytes.Buffer{}

		require.NoError(t, app.Run(t.Context(), []string{"carechain", "demo", "--log-level", "warn"}))
		assert.Equal(t, zapcore.WarnLevel, logger.Level())
	})

	t.Run("invalid log level is refused", func(t *testing.T) {
		app := newApp(newChain(t), factory(nodemocks.NewService(t)))
		app.Writer = &bytes.Buffer{}

		assert.Error(t, app.Run(t.Context(), []string{"carechain", "demo", "--log-level", "loud"}))
	})
}
