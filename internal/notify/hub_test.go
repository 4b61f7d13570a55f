package notify

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receive(t *testing.T, sub *Subscription) map[string]json.RawMessage {
	t.Helper()
	select {
	case data, ok := <-sub.C():
		if !ok {
			t.Fatal("subscription channel closed unexpectedly")
		}
		var msg map[string]json.RawMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("invalid event payload: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishReachesRoomSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	admin := hub.Subscribe(RoomAdmin)
	volunteer := hub.Subscribe(RoomVolunteer)

	hub.Publish(Event{
		Type:    EventNewSosAlert,
		Rooms:   []string{RoomAdmin, RoomVolunteer},
		Payload: map[string]interface{}{"id": 1},
	})

	for _, sub := range []*Subscription{admin, volunteer} {
		msg := receive(t, sub)
		var event string
		if err := json.Unmarshal(msg["event"], &event); err != nil || event != EventNewSosAlert {
			t.Errorf("event = %q (%v), want %q", event, err, EventNewSosAlert)
		}
	}
}

func TestPublishSkipsOtherRooms(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	volunteer := hub.Subscribe(RoomVolunteer)

	hub.Publish(Event{
		Type:    EventSosStatusUpdated,
		Rooms:   []string{RoomAdmin},
		Payload: map[string]interface{}{"id": 2},
	})

	select {
	case data := <-volunteer.C():
		t.Fatalf("volunteer room received admin-only event: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishDeliversAtMostOncePerSession(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	both := hub.Subscribe(RoomAdmin, RoomVolunteer)

	hub.Publish(Event{
		Type:    EventNewSosAlert,
		Rooms:   []string{RoomAdmin, RoomVolunteer},
		Payload: map[string]interface{}{"id": 3},
	})

	receive(t, both)
	select {
	case data := <-both.C():
		t.Fatalf("event delivered twice to one session: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishDropsForSlowSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	slow := hub.Subscribe(RoomAdmin)

	// Overfill the buffer; Publish must never block on a slow session.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer+10; i++ {
			hub.Publish(Event{
				Type:    EventNewResourceRequest,
				Rooms:   []string{RoomAdmin},
				Payload: map[string]interface{}{"seq": i},
			})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber buffer")
	}

	if got := len(slow.ch); got != subscriberBuffer {
		t.Errorf("buffered events = %d, want %d", got, subscriberBuffer)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	sub := hub.Subscribe(RoomAdmin, RoomVolunteer)
	if got := hub.SubscriberCount(RoomAdmin); got != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", got)
	}

	hub.Unsubscribe(sub)
	if _, ok := <-sub.C(); ok {
		t.Error("channel should be closed after Unsubscribe")
	}
	if got := hub.SubscriberCount(RoomAdmin); got != 0 {
		t.Errorf("SubscriberCount after Unsubscribe = %d, want 0", got)
	}

	// A second Unsubscribe must not close twice.
	hub.Unsubscribe(sub)
}

func TestCloseDisconnectsAllSessions(t *testing.T) {
	hub := NewHub(zap.NewNop())

	a := hub.Subscribe(RoomAdmin)
	b := hub.Subscribe(RoomAdmin, RoomVolunteer)

	hub.Close()

	for _, sub := range []*Subscription{a, b} {
		if _, ok := <-sub.C(); ok {
			t.Error("channel should be closed after hub Close")
		}
	}
}
