package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPushToEgressDropsWhenFull(t *testing.T) {
	c := &Client{ID: "conn-a", egress: make(chan Event, 2)}

	for i := 0; i < 2; i++ {
		require.True(t, c.PushToEgress(NewEventStruct("chat_message", nil, "")))
	}

	pushed := make(chan bool, 1)
	go func() { pushed <- c.PushToEgress(NewEventStruct("chat_message", nil, "")) }()

	select {
	case ok := <-pushed:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("PushToEgress blocked on a full queue")
	}

	require.Error(t, c.PushEventToEgress("chat_message", map[string]string{"message": "hi"}))
	require.Len(t, c.egress, 2)
}

func TestHandleErrorNeverBlocks(t *testing.T) {
	c := &Client{ID: "conn-a", err: make(chan error, 2)}

	for i := 0; i < 5; i++ {
		c.handleError(ErrUnknownEvent)
	}

	require.Len(t, c.err, 2)
}
