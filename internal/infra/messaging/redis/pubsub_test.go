package redis

import (
	"context"
	"testing"
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/node"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*client, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)

	c, err := NewClient(t.Context(), srv.Addr(), "", "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, srv
}

func receive(t *testing.T, ch <-chan node.Event) node.Event {
	t.Helper()

	select {
	case event, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return node.Event{}
	}
}

func TestNewClient(t *testing.T) {
	t.Run("connects", func(t *testing.T) {
		c, _ := newTestClient(t)
		assert.NotNil(t, c.conn)
	})

	t.Run("unreachable server", func(t *testing.T) {
		srv := miniredis.RunT(t)
		addr := srv.Addr()
		srv.Close()

		_, err := NewClient(t.Context(), addr, "", "", 0)
		assert.Error(t, err)
	})
}

func TestPublishSubscribe(t *testing.T) {
	c, _ := newTestClient(t)

	blockchainCh, err := c.Subscribe(t.Context(), node.LayerBlockchain)
	require.NoError(t, err)

	monitorCh, err := c.Subscribe(t.Context(), "events")
	require.NoError(t, err)

	event, err := node.NewEvent(node.LayerEdge, node.LayerBlockchain, node.EventMineBlock, node.MineBlockRequest{Validator: "validator_hospital_001"}, node.PriorityHigh)
	require.NoError(t, err)

	require.NoError(t, c.Publish(t.Context(), event))

	t.Run("target layer receives the event", func(t *testing.T) {
		got := receive(t, blockchainCh)

		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, event.Type, got.Type)
		assert.Equal(t, event.SourceLayer, got.SourceLayer)
		assert.JSONEq(t, string(event.Payload), string(got.Payload))
		assert.True(t, event.Timestamp.Equal(got.Timestamp))
	})

	t.Run("monitor channel mirrors the event", func(t *testing.T) {
		got := receive(t, monitorCh)
		assert.Equal(t, event.ID, got.ID)
	})
}

func TestSubscribeSkipsMalformedMessages(t *testing.T) {
	c, srv := newTestClient(t)

	ch, err := c.Subscribe(t.Context(), node.LayerBlockchain)
	require.NoError(t, err)

	srv.Publish(layerChannel(node.LayerBlockchain), "not json")

	event, err := node.NewEvent(node.LayerEdge, node.LayerBlockchain, node.EventPurgeStuck, node.PurgeStuckRequest{MinRejections: 1}, node.PriorityLow)
	require.NoError(t, err)
	require.NoError(t, c.Publish(t.Context(), event))

	assert.Equal(t, event.ID, receive(t, ch).ID)
}

func TestSubscriptionClosesWithContext(t *testing.T) {
	c, _ := newTestClient(t)

	ctx, cancel := context.WithCancel(t.Context())
	ch, err := c.Subscribe(ctx, node.LayerBlockchain)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription did not close")
	}
}

func TestClaimEvent(t *testing.T) {
	c, srv := newTestClient(t)

	first, err := c.ClaimEvent(t.Context(), "evt_1", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := c.ClaimEvent(t.Context(), "evt_1", time.Minute)
	require.NoError(t, err)
	assert.False(t, again)

	t.Run("claim expires", func(t *testing.T) {
		srv.FastForward(2 * time.Minute)

		claimed, err := c.ClaimEvent(t.Context(), "evt_1", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("key layout", func(t *testing.T) {
		assert.True(t, srv.Exists("carechain:idempotency:evt_1"))
	})
}
