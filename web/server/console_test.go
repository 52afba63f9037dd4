package server

import (
	"testing"
	"time"
)

func TestWebLogger_Messages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("render-123", messageChan)

	logger.Printf("Rendering camera %d (%dx%d)\n", 1, 800, 600)
	logger.Printf("Render error: %s\n", "boom")

	tests := []struct {
		message string
		level   string
	}{
		{"Rendering camera 1 (800x600)\n", "info"},
		{"Render error: boom\n", "error"},
	}

	for i, tt := range tests {
		select {
		case msg := <-messageChan:
			if msg.Message != tt.message {
				t.Errorf("Message %d: expected %q, got %q", i, tt.message, msg.Message)
			}
			if msg.Level != tt.level {
				t.Errorf("Message %d: expected level %q, got %q", i, tt.level, msg.Level)
			}
			if msg.RenderID != "render-123" {
				t.Errorf("Message %d: expected render id render-123, got %q", i, msg.RenderID)
			}
			if time.Since(msg.Timestamp) > time.Second {
				t.Errorf("Message %d: timestamp seems too old: %v", i, msg.Timestamp)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Timeout waiting for message %d", i)
		}
	}
}

func TestWebLogger_ChannelFullDoesNotBlock(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("render-full", messageChan)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			logger.Printf("Progress: %d%%\n", i*25)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Logger blocked on a full channel")
	}
	if len(messageChan) != 1 {
		t.Errorf("Expected the channel to hold one message, got %d", len(messageChan))
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("render-nil", nil)
	logger.Printf("Test message with nil channel\n")
}
