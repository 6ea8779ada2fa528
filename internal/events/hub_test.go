package events

import (
	"testing"
	"time"

	"github.com/campusops/lostfound/internal/testutil"
	"github.com/campusops/lostfound/internal/types"
	"github.com/stretchr/testify/assert"
)

func testItem() types.LostItem {
	return types.LostItem{
		Id:          1,
		ReferenceId: "EoGKUXPHgz",
		Name:        "Black umbrella",
		Status:      "dropped_off",
	}
}

func Test_queueEvent(t *testing.T) {
	t.Run("successful queue", func(t *testing.T) {
		c := &Client{
			send: make(chan *Event, 1),
			log:  testutil.TestLogger(t),
		}

		res := c.queueEvent(&Event{Type: EventItemReported})
		assert.True(t, res, "expected queueEvent to return true when channel is not full")

		select {
		case evt := <-c.send:
			assert.NotNil(t, evt, "expected an event to be queued for the client")
			assert.Equal(t, EventItemReported, evt.Type, "expected event type to match")
		default:
			t.Error("expected an event to be queued for the client, but none was")
		}
	})
	t.Run("channel full", func(t *testing.T) {
		c := &Client{
			send: make(chan *Event, 1),
			log:  testutil.TestLogger(t),
		}

		c.send <- &Event{} // Pre-fill the send channel to simulate a full channel
		res := c.queueEvent(&Event{Type: EventItemReported})
		assert.False(t, res, "expected queueEvent to return false when channel is full")
	})
}

func TestHub_registerAndBroadcast(t *testing.T) {
	hub := NewHub(testutil.TestLogger(t))
	go hub.Run()
	defer hub.Shutdown()

	c := NewClient(types.User{Id: "s12345"}, nil, hub, testutil.TestLogger(t))
	hub.RegisterClient(c)

	hub.Publish(EventItemClaimed, testItem())

	select {
	case evt := <-c.send:
		assert.Equal(t, EventItemClaimed, evt.Type, "expected event type to match")
		assert.Equal(t, "EoGKUXPHgz", evt.Item.ReferenceId, "expected item reference to match")
		assert.False(t, evt.Timestamp.IsZero(), "expected event timestamp to be set")
	case <-time.After(time.Second):
		t.Error("expected event to be delivered to registered client, but none was")
	}
}

func TestHub_deRegister(t *testing.T) {
	hub := NewHub(testutil.TestLogger(t))
	go hub.Run()
	defer hub.Shutdown()

	c := NewClient(types.User{Id: "s12345"}, nil, hub, testutil.TestLogger(t))
	hub.RegisterClient(c)
	hub.deRegisterChan <- c

	hub.Publish(EventItemReported, testItem())

	select {
	case <-c.send:
		t.Error("expected no event for a de-registered client")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_Shutdown(t *testing.T) {
	hub := NewHub(testutil.TestLogger(t))
	go hub.Run()

	c := NewClient(types.User{Id: "s12345"}, nil, hub, testutil.TestLogger(t))
	hub.RegisterClient(c)

	hub.Shutdown()

	select {
	case <-c.stop:
		// Channel is closed as expected
	default:
		t.Error("expected client stop channel to be closed after shutdown")
	}
}

func TestPublish_channelFull(t *testing.T) {
	// Hub is not running, so the broadcast channel never drains.
	hub := NewHub(testutil.TestLogger(t))
	for range cap(hub.broadcastChan) {
		hub.broadcastChan <- &Event{}
	}

	done := make(chan struct{})
	go func() {
		hub.Publish(EventItemCollected, testItem())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("expected Publish to drop the event instead of blocking")
	}
}
