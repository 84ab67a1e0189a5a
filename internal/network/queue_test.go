package network

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for _, ev := range []Event{GetDeployments, GetBuilds, GetGCloudLogs} {
		q.Push(ev)
	}
	assert.Equal(t, 3, q.Len())

	var got []Event
	for i := 0; i < 3; i++ {
		ev, err := q.Pop(context.Background())
		require.NoError(t, err)
		got = append(got, ev)
	}
	assert.Equal(t, []Event{GetDeployments, GetBuilds, GetGCloudLogs}, got)
	assert.Equal(t, 0, q.Len())
}

func TestQueuePopWaitsForPush(t *testing.T) {
	q := NewQueue()
	done := make(chan Event)
	go func() {
		ev, _ := q.Pop(context.Background())
		done <- ev
	}()

	time.Sleep(10 * time.Millisecond)
	q.Push(GetAppsignalData)

	select {
	case ev := <-done:
		assert.Equal(t, GetAppsignalData, ev)
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake up")
	}
}

func TestQueuePopCancelled(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := q.Pop(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueuePushNeverBlocks(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 10000; i++ {
		q.Push(GetGCloudLogsTail)
	}
	assert.Equal(t, 10000, q.Len())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "GetGCloudLogsTail", GetGCloudLogsTail.String())
	assert.Equal(t, "VerifyOktaRefreshToken", VerifyOktaRefreshToken.String())
	assert.Equal(t, "Unknown", Event(99).String())
}
