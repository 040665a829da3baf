package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SubscribePublish(t *testing.T) {
	hub := NewHub(8, nil)

	kitchen, err := hub.Connect("kitchen-screen")
	require.NoError(t, err)
	guest, err := hub.Connect("guest-phone")
	require.NoError(t, err)

	require.NoError(t, hub.Subscribe("kitchen-screen", "kitchen"))
	require.NoError(t, hub.Subscribe("guest-phone", "customer:7"))

	require.NoError(t, hub.Publish(context.Background(), "kitchen", "new-order", map[string]int{"orderId": 7}))

	select {
	case msg := <-kitchen:
		assert.Equal(t, "kitchen", msg.Topic)
		assert.Equal(t, "new-order", msg.Event)
		assert.JSONEq(t, `{"orderId":7}`, string(msg.Data))
	default:
		t.Fatal("kitchen screen received nothing")
	}

	assert.Empty(t, guest)
}

func TestHub_PublishWithoutMembersIsNoop(t *testing.T) {
	hub := NewHub(8, nil)
	assert.Equal(t, 0, hub.Deliver("table:4", "order-deleted", []byte(`{}`)))
	assert.NoError(t, hub.Publish(context.Background(), "admin", "new-order", struct{}{}))
}

func TestHub_FIFOPerConnection(t *testing.T) {
	hub := NewHub(8, nil)
	ch, err := hub.Connect("admin-1")
	require.NoError(t, err)
	require.NoError(t, hub.Subscribe("admin-1", "admin"))

	events := []string{"order-status-update", "new-items-added", "order-completed"}
	for _, event := range events {
		hub.Deliver("admin", event, []byte(`{}`))
	}

	for _, want := range events {
		msg := <-ch
		assert.Equal(t, want, msg.Event)
	}
}

func TestHub_FullQueueDrops(t *testing.T) {
	hub := NewHub(1, nil)
	_, err := hub.Connect("slow")
	require.NoError(t, err)
	require.NoError(t, hub.Subscribe("slow", "admin"))

	assert.Equal(t, 1, hub.Deliver("admin", "first", []byte(`{}`)))
	assert.Equal(t, 0, hub.Deliver("admin", "second", []byte(`{}`)))
}

func TestHub_UnsubscribeAndDisconnect(t *testing.T) {
	hub := NewHub(8, nil)
	ch, err := hub.Connect("c1")
	require.NoError(t, err)

	require.NoError(t, hub.Subscribe("c1", "admin"))
	require.NoError(t, hub.Subscribe("c1", "table:4"))
	assert.Equal(t, []string{"admin", "table:4"}, hub.Topics("c1"))

	require.NoError(t, hub.Unsubscribe("c1", "admin"))
	assert.Empty(t, hub.Members("admin"))
	assert.Equal(t, []string{"c1"}, hub.Members("table:4"))

	hub.Disconnect("c1")
	assert.Empty(t, hub.Members("table:4"))
	assert.Equal(t, 0, hub.ConnectionCount())

	_, open := <-ch
	assert.False(t, open)

	assert.ErrorIs(t, hub.Subscribe("c1", "admin"), ErrUnknownConnection)
	assert.ErrorIs(t, hub.Unsubscribe("c1", "admin"), ErrUnknownConnection)
	hub.Disconnect("c1")
}

func TestHub_ConnectTwice(t *testing.T) {
	hub := NewHub(8, nil)
	_, err := hub.Connect("c1")
	require.NoError(t, err)
	_, err = hub.Connect("c1")
	assert.ErrorIs(t, err, ErrConnectionExists)
}

func TestHub_CloseEndsStreams(t *testing.T) {
	hub := NewHub(8, nil)
	ch, err := hub.Connect("c1")
	require.NoError(t, err)
	require.NoError(t, hub.Subscribe("c1", "kitchen"))

	hub.Close()

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, hub.ConnectionCount())
	assert.Empty(t, hub.Members("kitchen"))
	assert.Zero(t, hub.Deliver("kitchen", "new-order", []byte(`{}`)))

	_, err = hub.Connect("c2")
	assert.ErrorIs(t, err, ErrHubClosed)
	assert.NotPanics(t, func() { hub.Disconnect("c1") })
}
