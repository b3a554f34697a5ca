package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_SendMessageToUser(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	alice := &Client{Hub: hub, Send: make(chan []byte, 1), UserID: "alice"}
	bob := &Client{Hub: hub, Send: make(chan []byte, 1), UserID: "bob"}
	hub.Register <- alice
	hub.Register <- bob

	require.Eventually(t, func() bool { return hub.Connected("alice") == 1 && hub.Connected("bob") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.SendMessageToUser("alice", map[string]string{"orderId": "o-1"}, TypeOrderOverdue))

	select {
	case raw := <-alice.Send:
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, TypeOrderOverdue, env.Type)
	case <-time.After(time.Second):
		t.Fatal("alice got nothing")
	}
	assert.Empty(t, bob.Send)

	// full buffer drops instead of blocking
	require.NoError(t, hub.SendMessageToUser("bob", "x", TypeOrderOverdue))
	require.NoError(t, hub.SendMessageToUser("bob", "y", TypeOrderOverdue))
	assert.Len(t, bob.Send, 1)

	hub.unregister <- alice
	require.Eventually(t, func() bool { return hub.Connected("alice") == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-alice.Send
	assert.False(t, open)
}
