package chain

import (
	"context"
	"fmt"

	"github.com/Vinamra-Agarwal/CareChain/internal/ledger"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// SubmitTransaction implements Service.
func (s *service) SubmitTransaction(ctx context.Context, tx ledger.Transaction) (result SubmissionResult) {
	ctx, span := s.tracer.Start(ctx, "chain.SubmitTransaction", trace.WithAttributes(
		attribute.String("tx.id", tx.ID),
		attribute.String("tx.type", string(tx.Type)),
	))
	defer span.End()

	ctx = logger.Derive(ctx, "tx.id", tx.ID, "patient.id", tx.PatientID)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("submit transaction: %v", r)
			logger.Error(ctx, "transaction submission fault", "error", err)
			span.SetStatus(codes.Error, err.Error())

			result = SubmissionResult{
				TransactionID: tx.ID,
				Status:        SubmissionFailed,
				Timestamp:     s.now(),
				Error:         err.Error(),
			}
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, known := s.transactions[tx.ID]; known {
		span.SetStatus(codes.Error, ErrDuplicateTransaction.Error())
		logger.Warn(ctx, "duplicate transaction refused")

		return SubmissionResult{
			TransactionID: tx.ID,
			Status:        SubmissionFailed,
			Timestamp:     s.now(),
			Error:         ErrDuplicateTransaction.Error(),
		}
	}

	entry := &pendingEntry{tx: tx}
	s.pending = append(s.pending, entry)
	s.transactions[tx.ID] = &txRecord{
		tx:      tx,
		state:   TransactionPending,
		pending: entry,
	}

	s.instruments.submitted.Add(ctx, 1, metric.WithAttributes(attribute.String("tx.type", string(tx.Type))))
	logger.Info(ctx, "transaction submitted", "pool.size", len(s.pending))

	return SubmissionResult{
		TransactionID: tx.ID,
		Status:        SubmissionSubmitted,
		Timestamp:     s.now(),
		Message:       "transaction added to pending pool",
	}
}
