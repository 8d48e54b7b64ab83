package api_test

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miikama/game-lobby-REST-backend/internal/api"
	"github.com/miikama/game-lobby-REST-backend/internal/config"
	"github.com/miikama/game-lobby-REST-backend/internal/testutil"
)

func TestServerStopsWhenContextEnds(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	cfg := &config.Config{
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}
	server := api.NewServer(handler, cfg, testutil.NopLogger())

	var hookCalled atomic.Bool
	server.OnShutdown(func() { hookCalled.Store(true) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(testTimeout):
		t.Fatal("server did not stop")
	}
	assert.Eventually(t, hookCalled.Load, testTimeout, testTick)

	_, err = http.Get("http://" + ln.Addr().String() + "/")
	assert.Error(t, err)
}

func TestServerRunReportsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	addr := ln.Addr().(*net.TCPAddr)
	cfg := &config.Config{Host: "127.0.0.1", Port: addr.Port, ShutdownTimeout: time.Second}
	server := api.NewServer(http.NotFoundHandler(), cfg, testutil.NopLogger())

	err = server.Run(context.Background())
	assert.ErrorContains(t, err, "listen")
}
