package sse

import (
	"strings"
	"testing"
	"time"
)

func recvMsg(t *testing.T, ch chan []byte) string {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("channel closed before message arrived")
		}
		return string(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return ""
	}
}

func waitForClients(t *testing.T, b *Broker, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if b.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d (now %d)", want, b.ClientCount())
}

func TestBrokerPublishStudyEvent(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch := b.Subscribe()
	waitForClients(t, b, 1)

	b.PublishStudyEvent("study.created", "abc-123")

	msg := recvMsg(t, ch)
	if !strings.HasPrefix(msg, "event: study.created\n") {
		t.Errorf("message = %q", msg)
	}
	if !strings.Contains(msg, `"studyId":"abc-123"`) {
		t.Errorf("message missing study id: %q", msg)
	}
	if !strings.HasSuffix(msg, "\n\n") {
		t.Errorf("message not frame-terminated: %q", msg)
	}
}

func TestBrokerPublishReachesAllClients(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	waitForClients(t, b, 2)

	b.Publish(Event{Type: "audio.ready", Data: map[string]string{"studyId": "s1"}})

	for _, ch := range []chan []byte{ch1, ch2} {
		msg := recvMsg(t, ch)
		if !strings.Contains(msg, "audio.ready") {
			t.Errorf("message = %q", msg)
		}
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch := b.Subscribe()
	waitForClients(t, b, 1)

	b.Unsubscribe(ch)
	waitForClients(t, b, 0)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("unexpected message on unsubscribed channel")
		}
	case <-time.After(2 * time.Second):
		t.Error("channel not closed after unsubscribe")
	}
}

func TestBrokerCloseClosesClients(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	waitForClients(t, b, 1)

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("unexpected message after close")
		}
	case <-time.After(2 * time.Second):
		t.Error("channel not closed after broker close")
	}

	// Operations on a closed broker are safe no-ops.
	b.Publish(Event{Type: "x"})
	b.PublishStudyEvent("study.created", "s1")
	b.Unsubscribe(ch)
	if n := b.ClientCount(); n != 0 {
		t.Errorf("client count after close = %d", n)
	}
	late := b.Subscribe()
	if _, ok := <-late; ok {
		t.Error("subscribe after close returned an open channel")
	}
}

func TestBrokerSkipsSlowClient(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	slow := b.Subscribe()
	_ = slow
	waitForClients(t, b, 1)

	// Overflow the client buffer; the broker must keep running.
	for i := 0; i < 200; i++ {
		b.PublishStudyEvent("study.created", "flood")
	}

	healthy := b.Subscribe()
	waitForClients(t, b, 2)
	b.PublishStudyEvent("audio.ready", "s9")

	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-healthy:
			if strings.Contains(string(msg), "audio.ready") {
				return
			}
		case <-deadline:
			t.Fatal("broker stalled on slow client")
		}
	}
}
