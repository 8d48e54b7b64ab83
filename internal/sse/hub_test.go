package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "player_joined",
			data:      `{"game_id":1}`,
			expected:  "event: player_joined\ndata: {\"game_id\":1}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "note",
			data:      "line1\nline2",
			expected:  "event: note\ndata: line1\ndata: line2\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func receive(t *testing.T, c *Client) (string, bool) {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		return string(msg), ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return "", false
	}
}

func TestPublishDeliversToGameSubscribers(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	defer m.Close()

	hub := m.GetOrCreateHub(1)
	client := NewClient(hub, "test")
	require.True(t, hub.Register(client))

	m.Publish(model.Event{Type: model.EventPlayerJoined, GameID: 1, PlayerID: 2})

	msg, ok := receive(t, client)
	require.True(t, ok)
	assert.Contains(t, msg, "event: player_joined\n")
	assert.Contains(t, msg, `"player_id":2`)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())

	m.Publish(model.Event{Type: model.EventPlayerJoined, GameID: 5, PlayerID: 2})

	assert.Nil(t, m.GetHub(5))
}

func TestGameDeletedClosesHub(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())

	hub := m.GetOrCreateHub(1)
	client := NewClient(hub, "test")
	require.True(t, hub.Register(client))

	m.Publish(model.Event{Type: model.EventGameDeleted, GameID: 1, PlayerID: 1})

	msg, ok := receive(t, client)
	require.True(t, ok)
	assert.Contains(t, msg, "event: game_deleted\n")

	_, ok = receive(t, client)
	assert.False(t, ok, "client channel should be closed")
	assert.Nil(t, m.GetHub(1))
}

func TestClosedHubRejectsClients(t *testing.T) {
	hub := NewHub(1, testutil.NopLogger())
	hub.Close()
	hub.Close()

	client := NewClient(hub, "test")
	assert.False(t, hub.Register(client))

	// Must not block once the hub is gone
	hub.Unregister(client)
}

func TestCleanupEmptyHubs(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	defer m.Close()

	busy := m.GetOrCreateHub(1)
	m.GetOrCreateHub(2)
	require.True(t, busy.Register(NewClient(busy, "test")))
	require.Eventually(t, func() bool { return busy.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	m.CleanupEmptyHubs()

	assert.NotNil(t, m.GetHub(1))
	assert.Nil(t, m.GetHub(2))
}

func TestRunCleanupStopsWithContext(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	defer m.Close()
	m.GetOrCreateHub(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.RunCleanup(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return m.GetHub(1) == nil }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
