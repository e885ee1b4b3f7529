package node

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Layer names one tier of the CareChain deployment. Each layer listens on
// its own bus channel.
type Layer string

const (
	LayerIoT          Layer = "iot"
	LayerEdge         Layer = "edge"
	LayerBlockchain   Layer = "blockchain"
	LayerAnalytics    Layer = "analytics"
	LayerPresentation Layer = "presentation"
)

// EventType identifies what an event carries.
type EventType string

// Inbound event types handled by the node.
const (
	EventSubmitTransaction EventType = "submit_transaction"
	EventProcessedData     EventType = "processed_data"
	EventMineBlock         EventType = "mine_block"
	EventPurgeStuck        EventType = "purge_stuck"
)

// Outbound event types emitted by the node.
const (
	EventBlockMined           EventType = "block_mined"
	EventConsensusFailed      EventType = "consensus_failed"
	EventTransactionSubmitted EventType = "transaction_submitted"
)

// Priority orders events for consumers. Lower is more urgent.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Event is the envelope exchanged between layers.
type Event struct {
	ID          string          `json:"eventId"`
	SourceLayer Layer           `json:"sourceLayer"`
	TargetLayer Layer           `json:"targetLayer"`
	Type        EventType       `json:"eventType"`
	Payload     json.RawMessage `json:"payload"`
	Timestamp   time.Time       `json:"timestamp"`
	Priority    Priority        `json:"priority"`
}

// NewEvent wraps payload into an envelope with a fresh time-ordered id.
func NewEvent(source, target Layer, typ EventType, payload any, priority Priority) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s payload: %w", typ, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Event{}, err
	}

	return Event{
		ID:          id.String(),
		SourceLayer: source,
		TargetLayer: target,
		Type:        typ,
		Payload:     raw,
		Timestamp:   time.Now().UTC(),
		Priority:    priority,
	}, nil
}

// MineBlockRequest is the payload of a mine_block event. An empty validator
// falls back to the node's default proposer.
type MineBlockRequest struct {
	Validator string `json:"validator"`
}

// PurgeStuckRequest is the payload of a purge_stuck event.
type PurgeStuckRequest struct {
	MinRejections int `json:"minRejections"`
}

// ProcessedData is the reading forwarded by an edge gateway.
type ProcessedData struct {
	GatewayID       string  `json:"gatewayId" validate:"notblank"`
	PatientID       string  `json:"patientId" validate:"notblank"`
	DeviceID        string  `json:"deviceId" validate:"notblank"`
	DataType        string  `json:"dataType" validate:"notblank"`
	ProcessedValue  float64 `json:"processedValue"`
	ConfidenceScore float64 `json:"confidenceScore" validate:"gte=0,lte=1"`
	RawDataHash     string  `json:"rawDataHash" validate:"required"`
}
