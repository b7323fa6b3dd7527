package transport

import (
	"testing"
	"time"
)

func TestWebSocketTransportCloseStopsSends(t *testing.T) {
	wst := NewWebSocketTransport("127.0.0.1:0")

	if err := wst.Send(Update{Label: "C", Confidence: 0.8}); err != nil {
		t.Fatalf("Send before Close: %v", err)
	}

	if err := wst.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// After Close the broadcaster is gone; sends must discard immediately
	// instead of queueing, even well past the buffer capacity.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			if err := wst.Send(Update{Label: "C", Confidence: 0.8}); err != nil {
				t.Errorf("Send after Close: %v", err)
				return
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Send blocked after Close")
	}
}

func TestWebSocketTransportCloseIdempotent(t *testing.T) {
	wst := NewWebSocketTransport("127.0.0.1:0")

	if err := wst.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	// A second Close must not panic on the already-closed done channel.
	_ = wst.Close()
}
