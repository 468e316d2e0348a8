package stream_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/primary/stream"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRunningRegistry() *stream.Registry {
	r := stream.NewRegistry(testLogger())
	go r.Run()
	return r
}

func TestRegistry_RegisterUnregister(t *testing.T) {
	registry := newRunningRegistry()

	client := stream.NewClient()
	registry.Register <- client

	assert.Eventually(t, func() bool {
		return registry.Size() == 1
	}, time.Second, 5*time.Millisecond)

	registry.Unregister <- client

	assert.Eventually(t, func() bool {
		return registry.Size() == 0
	}, time.Second, 5*time.Millisecond)

	// Unregistering closes the send channel so the transport writer exits.
	select {
	case _, open := <-client.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestRegistry_UnregisterUnknownClient(t *testing.T) {
	registry := newRunningRegistry()

	client := stream.NewClient()
	registry.Unregister <- client

	// No panic and no phantom connection.
	assert.Eventually(t, func() bool {
		return registry.Size() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestRegistry_BroadcastReachesAllClients(t *testing.T) {
	registry := newRunningRegistry()

	clients := make([]*stream.Client, 3)
	for i := range clients {
		clients[i] = stream.NewClient()
		registry.Register <- clients[i]
	}
	require.Eventually(t, func() bool {
		return registry.Size() == 3
	}, time.Second, 5*time.Millisecond)

	registry.Broadcast(domain.Command{Kind: domain.CommandReveal, IssuedAt: 42})

	for _, client := range clients {
		select {
		case cmd := <-client.Send:
			assert.Equal(t, domain.CommandReveal, cmd.Kind)
			assert.Equal(t, int64(42), cmd.IssuedAt)
		case <-time.After(time.Second):
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestRegistry_SlowClientIsIsolated(t *testing.T) {
	registry := newRunningRegistry()

	healthy := stream.NewClient()
	stuck := stream.NewClient()
	registry.Register <- healthy
	registry.Register <- stuck
	require.Eventually(t, func() bool {
		return registry.Size() == 2
	}, time.Second, 5*time.Millisecond)

	// Fill the stuck client's buffer; nothing drains it.
	for i := 0; i < cap(stuck.Send); i++ {
		stuck.Send <- domain.Command{Kind: domain.CommandReset}
	}

	registry.Broadcast(domain.Command{Kind: domain.CommandReveal, IssuedAt: 7})

	// The healthy client still gets the command.
	select {
	case cmd := <-healthy.Send:
		assert.Equal(t, domain.CommandReveal, cmd.Kind)
	case <-time.After(time.Second):
		t.Fatal("healthy client did not receive broadcast")
	}

	// The stuck client is evicted rather than blocking the fan-out.
	assert.Eventually(t, func() bool {
		return registry.Size() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestClient_CloseSendIsIdempotent(t *testing.T) {
	client := stream.NewClient()

	client.CloseSend()
	assert.NotPanics(t, client.CloseSend)
}
