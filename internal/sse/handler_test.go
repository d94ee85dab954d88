package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEventLine(t *testing.T, sc *bufio.Scanner) string {
	t.Helper()
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "event: ") {
			return strings.TrimPrefix(line, "event: ")
		}
	}
	t.Fatalf("stream ended: %v", sc.Err())
	return ""
}

func TestHandler_StreamsFilteredEvents(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?types=draft.resolved&player=p1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	sc := bufio.NewScanner(resp.Body)
	assert.Equal(t, EventTypeConnected, readEventLine(t, sc))

	waitForClients(t, hub, 1)
	hub.Broadcast("draft.started", "p1", nil)
	hub.Broadcast("draft.resolved", "p2", nil)
	hub.Broadcast("draft.resolved", "p1", map[string]int{"slot": 0})

	assert.Equal(t, "draft.resolved", readEventLine(t, sc))
	require.True(t, sc.Scan())
	assert.Contains(t, sc.Text(), `"player_id":"p1"`)
}

func TestHandler_UnregistersOnDisconnect(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	waitForClients(t, hub, 1)
	cancel()
	resp.Body.Close()
	waitForClients(t, hub, 0)
}
