package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(10, nil)
	require.NoError(t, err)
	assert.True(t, hub.IsOnline(10))
	assert.False(t, hub.IsOnline(11))

	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(10))

	// Unregistering twice is harmless.
	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(10))
}

func TestHub_ShutdownClosesSendChannels(t *testing.T) {
	hub := NewHub()

	first, err := hub.Register(10, nil)
	require.NoError(t, err)
	second, err := hub.Register(11, nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))

	// The hub only closes Send; each write pump owns its connection and
	// emits the close frame itself.
	_, ok := <-first.Send
	assert.False(t, ok)
	_, ok = <-second.Send
	assert.False(t, ok)

	assert.False(t, hub.IsOnline(10))
	assert.False(t, hub.IsOnline(11))

	// Late deliveries against a closed client are swallowed.
	first.Deliver([]byte("late"))
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	clients := make([]*Client, 0, maxConnsPerUser)
	for i := 0; i < maxConnsPerUser; i++ {
		client, err := hub.Register(10, nil)
		require.NoError(t, err)
		clients = append(clients, client)
	}

	_, err := hub.Register(10, nil)
	assert.Error(t, err, "connection over the per-user limit is refused")

	// Another user is unaffected.
	_, err = hub.Register(11, nil)
	assert.NoError(t, err)

	// Freeing a slot admits a new connection.
	hub.UnregisterClient(clients[0])
	_, err = hub.Register(10, nil)
	assert.NoError(t, err)
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(10, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(10, nil)
	require.NoError(t, err)
	clientOther, err := hub.Register(11, nil)
	require.NoError(t, err)

	hub.Broadcast(10, "hello")

	for _, client := range []*Client{clientA, clientB} {
		select {
		case msg := <-client.Send:
			assert.Equal(t, "hello", string(msg))
		default:
			t.Fatal("expected message for user 10")
		}
	}
	select {
	case <-clientOther.Send:
		t.Fatal("user 11 should not receive user 10 messages")
	default:
	}

	hub.BroadcastAll("everyone")
	for _, client := range []*Client{clientA, clientB, clientOther} {
		select {
		case msg := <-client.Send:
			assert.Equal(t, "everyone", string(msg))
		default:
			t.Fatal("expected broadcast for every client")
		}
	}
}

func TestHub_WiringForwardsRedisMessages(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	notifier := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, notifier))
	time.Sleep(50 * time.Millisecond)

	client, err := hub.Register(7, nil)
	require.NoError(t, err)

	require.NoError(t, notifier.PublishUser(ctx, 7, `{"type":"notification"}`))

	select {
	case msg := <-client.Send:
		assert.Equal(t, `{"type":"notification"}`, string(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("message was not forwarded to the hub client")
	}

	require.NoError(t, notifier.PublishBroadcast(ctx, `{"type":"broadcast"}`))
	select {
	case msg := <-client.Send:
		assert.Equal(t, `{"type":"broadcast"}`, string(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast was not forwarded to the hub client")
	}
}
