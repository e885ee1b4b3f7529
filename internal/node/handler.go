package node

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Vinamra-Agarwal/CareChain/internal/chain"
	"github.com/Vinamra-Agarwal/CareChain/internal/ledger"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/logger"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/validator"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/x/chflow"
)

// consume reads inbound events until ctx is done or the subscription closes.
func (s *service) consume(ctx context.Context, eventsCh <-chan Event, outboxCh chan<- Event) {
	for {
		event, ok := chflow.Receive(ctx, eventsCh)
		if !ok {
			return
		}

		s.limiter.Take()

		eventCtx := logger.Derive(ctx,
			"event.id", event.ID,
			"event.type", event.Type,
			"event.source", event.SourceLayer,
		)

		claimed, err := s.guard.ClaimEvent(eventCtx, event.ID, s.claimTTL)
		if err != nil {
			logger.Error(eventCtx, "failed to claim event", "error", err)
			continue
		}
		if !claimed {
			logger.Debug(eventCtx, "event already handled elsewhere")
			continue
		}

		if err := s.dispatch(eventCtx, event, outboxCh); err != nil {
			logger.Error(eventCtx, "failed to handle event", "error", err)
		}
	}
}

// dispatch routes one event to its handler.
func (s *service) dispatch(ctx context.Context, event Event, outboxCh chan<- Event) error {
	switch event.Type {
	case EventSubmitTransaction:
		var tx ledger.Transaction
		if err := json.Unmarshal(event.Payload, &tx); err != nil {
			return fmt.Errorf("decode transaction: %w", err)
		}
		return s.submit(ctx, tx, outboxCh)

	case EventProcessedData:
		tx, err := decodeProcessedData(event.Payload)
		if err != nil {
			return err
		}
		return s.submit(ctx, tx, outboxCh)

	case EventMineBlock:
		var req MineBlockRequest
		if len(event.Payload) > 0 {
			if err := json.Unmarshal(event.Payload, &req); err != nil {
				return fmt.Errorf("decode mine request: %w", err)
			}
		}
		return s.mine(ctx, req, outboxCh)

	case EventPurgeStuck:
		var req PurgeStuckRequest
		if err := json.Unmarshal(event.Payload, &req); err != nil {
			return fmt.Errorf("decode purge request: %w", err)
		}
		s.purge(ctx, req.MinRejections)
		return nil

	default:
		logger.Warn(ctx, "ignoring unknown event type")
		return nil
	}
}

// decodeProcessedData turns an edge reading into a PatientData transaction
// signed by the gateway. The reading itself becomes the encrypted data.
func decodeProcessedData(payload json.RawMessage) (ledger.Transaction, error) {
	var data ProcessedData
	if err := json.Unmarshal(payload, &data); err != nil {
		return ledger.Transaction{}, fmt.Errorf("decode processed data: %w", err)
	}

	if err := validator.Validate(data); err != nil {
		return ledger.Transaction{}, err
	}

	return ledger.NewPatientDataTransaction(ledger.PatientDataInput{
		PatientID:     data.PatientID,
		DeviceID:      data.DeviceID,
		DataType:      data.DataType,
		EncryptedData: string(payload),
		Sender:        data.GatewayID,
	})
}

func (s *service) submit(ctx context.Context, tx ledger.Transaction, outboxCh chan<- Event) error {
	result := s.chain.SubmitTransaction(ctx, tx)
	if result.Status != chain.SubmissionSubmitted {
		logger.Warn(ctx, "transaction not accepted",
			"tx.id", result.TransactionID,
			"error", result.Error,
		)
	}

	return s.emit(ctx, outboxCh, EventTransactionSubmitted, result, PriorityLow)
}

func (s *service) mine(ctx context.Context, req MineBlockRequest, outboxCh chan<- Event) error {
	validatorID := req.Validator
	if validatorID == "" {
		validatorID = s.defaultValidator
	}
	if validatorID == "" {
		return ErrNoValidator
	}

	result := s.chain.MineBlock(ctx, validatorID)

	switch result.Status {
	case chain.MiningSuccess:
		notification, _ := result.Notification()
		if err := s.emit(ctx, outboxCh, EventBlockMined, notification, PriorityHigh); err != nil {
			return err
		}

		if s.purgeAfter > 0 {
			s.purge(ctx, s.purgeAfter)
		}
		return nil

	case chain.MiningConsensusFailed:
		return s.emit(ctx, outboxCh, EventConsensusFailed, result, PriorityHigh)

	case chain.MiningNoTransactions:
		logger.Debug(ctx, "mine request with an empty pool")
		return nil

	default:
		return fmt.Errorf("mine block: %s", result.Error)
	}
}

func (s *service) purge(ctx context.Context, minRejections int) {
	purged := s.chain.PurgeRejected(ctx, minRejections)
	if len(purged) > 0 {
		logger.Info(ctx, "purged stuck transactions", "purge.ids", purged)
	}
}

// emit queues one event per notified layer on the outbox.
func (s *service) emit(ctx context.Context, outboxCh chan<- Event, typ EventType, payload any, priority Priority) error {
	events := make([]Event, 0, len(notifiedLayers))
	for _, target := range notifiedLayers {
		event, err := NewEvent(LayerBlockchain, target, typ, payload, priority)
		if err != nil {
			return err
		}
		events = append(events, event)
	}

	if sent := chflow.SendAll(ctx, outboxCh, events...); sent < len(events) {
		return ctx.Err()
	}
	return nil
}

// publishOutbox publishes queued events until the outbox is closed or ctx
// is done. An event whose publication keeps failing is logged and dropped.
func (s *service) publishOutbox(ctx context.Context, outboxCh <-chan Event) {
	for {
		event, ok := chflow.Receive(ctx, outboxCh)
		if !ok {
			return
		}

		err := s.retry.Execute(ctx, func() error {
			return s.publisher.Publish(ctx, event)
		})
		if err != nil {
			logger.Error(ctx, "failed to publish event",
				"event.id", event.ID,
				"event.type", event.Type,
				"event.target", event.TargetLayer,
				"error", err,
			)
		}
	}
}
