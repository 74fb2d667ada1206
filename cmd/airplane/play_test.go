package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestStartSpectatingStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := startSpectating(ctx, "127.0.0.1:0", log.New(io.Discard))

	hub.Publish(map[string]int{"score": 1})
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-hub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("hub still running after cancel")
	}

	// Publishing after shutdown must not block.
	hub.Publish(map[string]int{"score": 2})
}
