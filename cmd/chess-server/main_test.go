package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/httpx"
)

func quietServer() *httpx.Server {
	cfg := config.NewConfigBuilder().
		WithVerbosity(config.Silent).
		WithLog(io.Discard).
		Build()
	return httpx.NewServer(cfg)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, quietServer(), "127.0.0.1:0") }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_ListenError(t *testing.T) {
	err := serve(context.Background(), quietServer(), "127.0.0.1:notaport")
	assert.Error(t, err)
}
