package eventlog

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readArchive(t *testing.T, path string) []Event {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	var events []Event
	scanner := bufio.NewScanner(dec)
	for scanner.Scan() {
		var evt Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &evt))
		events = append(events, evt)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestZstdArchiver_GroupsByHourAndAppends(t *testing.T) {
	dir := t.TempDir()
	a := NewZstdArchiver(dir)
	ctx := context.Background()

	ten := time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)
	eleven := time.Date(2026, 3, 1, 11, 5, 0, 0, time.UTC)
	playerID := "p1"

	require.NoError(t, a.Archive(ctx, []Event{
		{ID: 1, EventType: "draft.started", PlayerID: &playerID, CreatedAt: ten},
		{ID: 2, EventType: "draft.resolved", PlayerID: &playerID, CreatedAt: eleven},
	}))
	require.NoError(t, a.Archive(ctx, []Event{
		{ID: 3, EventType: "draft.abandoned", CreatedAt: ten.Add(time.Minute)},
	}))

	tenEvents := readArchive(t, a.PathForHour("2026-03-01-10"))
	require.Len(t, tenEvents, 2)
	assert.Equal(t, int64(1), tenEvents[0].ID)
	assert.Equal(t, int64(3), tenEvents[1].ID)
	assert.Equal(t, "p1", *tenEvents[0].PlayerID)

	elevenEvents := readArchive(t, a.PathForHour("2026-03-01-11"))
	require.Len(t, elevenEvents, 1)
	assert.Equal(t, "draft.resolved", elevenEvents[0].EventType)
}

func TestZstdArchiver_EmptyBatch(t *testing.T) {
	dir := t.TempDir() + "/nested"
	require.NoError(t, NewZstdArchiver(dir).Archive(context.Background(), nil))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
