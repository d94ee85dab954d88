package eventlog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdArchiver appends events to hourly JSONL files compressed with zstd.
// Each event lands in the file for the UTC hour it was created in, so
// archiving the same hour twice appends a second zstd frame.
type ZstdArchiver struct {
	dir    string
	prefix string
	mu     sync.Mutex
}

// NewZstdArchiver creates an archiver writing under dir
func NewZstdArchiver(dir string) *ZstdArchiver {
	return &ZstdArchiver{dir: dir, prefix: ArchiveFilePrefix}
}

// Archive implements Archiver
func (a *ZstdArchiver) Archive(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	byHour := make(map[string][]Event)
	for _, evt := range events {
		hour := evt.CreatedAt.UTC().Format(ArchiveHourLayout)
		byHour[hour] = append(byHour[hour], evt)
	}
	hours := make([]string, 0, len(byHour))
	for hour := range byHour {
		hours = append(hours, hour)
	}
	sort.Strings(hours)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(a.dir, ArchiveDirPermissions); err != nil {
		return fmt.Errorf("failed to create archive dir: %w", err)
	}

	for _, hour := range hours {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.appendHour(hour, byHour[hour]); err != nil {
			return fmt.Errorf("failed to archive hour %s: %w", hour, err)
		}
	}
	return nil
}

// PathForHour returns the archive file for an hour in ArchiveHourLayout
func (a *ZstdArchiver) PathForHour(hour string) string {
	return filepath.Join(a.dir, fmt.Sprintf("%s-%s%s", a.prefix, hour, ArchiveFileExtension))
}

func (a *ZstdArchiver) appendHour(hour string, events []Event) error {
	f, err := os.OpenFile(a.PathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, ArchiveFilePermissions)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return err
	}
	w := bufio.NewWriterSize(enc, ArchiveBufferSize)

	for _, evt := range events {
		b, err := json.Marshal(evt)
		if err != nil {
			_ = enc.Close()
			return err
		}
		if _, err := w.Write(b); err != nil {
			_ = enc.Close()
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			_ = enc.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Sync()
}
