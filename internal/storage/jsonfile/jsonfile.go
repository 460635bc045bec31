// Package jsonfile loads and saves a whole TicketStore as a single JSON file.
//
// The file holds the ID counter and every ticket:
//
//	{"version": 1, "current_id": 3, "tickets": [{"id": 1, "title": "...", ...}]}
//
// Saves replace the file atomically (temp file + rename), so a crash leaves
// either the old or the new state on disk, never a partial write.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tkt-dev/tk/internal/debug"
	"github.com/tkt-dev/tk/internal/storage"
	"github.com/tkt-dev/tk/internal/telemetry"
	"github.com/tkt-dev/tk/internal/types"
)

// FormatVersion is written into every saved file.
const FormatVersion = 1

// ErrUnsupportedVersion is returned for files written by a newer tk.
var ErrUnsupportedVersion = errors.New("unsupported ticket file version")

type fileContents struct {
	Version   int            `json:"version"`
	CurrentID types.TicketID `json:"current_id"`
	Tickets   []types.Ticket `json:"tickets"`
}

// Load reads the store at path. A missing or empty file yields a fresh empty
// store. A file that cannot be decoded is moved aside to
// "<path>.corrupt-<unix-seconds>" and a fresh empty store is returned, so the
// next save does not destroy the unreadable bytes. Other I/O errors are
// returned.
func Load(ctx context.Context, path string) (s *storage.TicketStore, err error) {
	ctx, op := telemetry.StartOp(ctx, "Load", attribute.String("tk.file", path))
	defer func() { op.End(ctx, err) }()

	data, err := os.ReadFile(path) // #nosec G304 - path comes from tk configuration
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			debug.Logf("jsonfile: %s does not exist, starting with an empty store\n", path)
			return storage.New(), nil
		}
		return nil, fmt.Errorf("jsonfile: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return storage.New(), nil
	}

	s, decodeErr := decode(data)
	if decodeErr != nil {
		if errors.Is(decodeErr, ErrUnsupportedVersion) {
			return nil, fmt.Errorf("jsonfile: %s: %w", path, decodeErr)
		}
		aside, moveErr := quarantine(path)
		if moveErr != nil {
			return nil, fmt.Errorf("jsonfile: %s is unreadable (%v) and could not be moved aside: %w", path, decodeErr, moveErr)
		}
		debug.Warnf("%s is unreadable (%v); moved to %s and starting with an empty store\n", path, decodeErr, aside)
		return storage.New(), nil
	}

	op.SetAttributes(attribute.Int("tk.ticket.count", s.Len()))
	return s, nil
}

func decode(data []byte) (*storage.TicketStore, error) {
	var contents fileContents
	if err := json.Unmarshal(data, &contents); err != nil {
		return nil, err
	}
	if contents.Version > FormatVersion {
		return nil, fmt.Errorf("%w: %d (this tk understands up to %d)", ErrUnsupportedVersion, contents.Version, FormatVersion)
	}
	return storage.Restore(contents.CurrentID, contents.Tickets)
}

func quarantine(path string) (string, error) {
	aside := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
	if err := os.Rename(path, aside); err != nil {
		return "", err
	}
	return aside, nil
}

// Save writes the whole store to path, replacing any previous content.
func Save(ctx context.Context, path string, s *storage.TicketStore) (err error) {
	ctx, op := telemetry.StartOp(ctx, "Save",
		attribute.String("tk.file", path),
		attribute.Int("tk.ticket.count", s.Len()),
	)
	defer func() { op.End(ctx, err) }()

	currentID, tickets := s.Snapshot()
	data, err := json.MarshalIndent(fileContents{
		Version:   FormatVersion,
		CurrentID: currentID,
		Tickets:   tickets,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: create directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		_ = tempFile.Close()
		_ = os.Remove(tempPath) // no-op after a successful rename
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("jsonfile: write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("jsonfile: sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("jsonfile: close temp file: %w", err)
	}

	if err := renameWithRetry(ctx, tempPath, path); err != nil {
		return fmt.Errorf("jsonfile: replace %s: %w", path, err)
	}
	debug.Logf("jsonfile: saved %d tickets to %s\n", len(tickets), path)
	return nil
}

// renameWithRetry retries the final rename on Windows, where another process
// (editor, indexer, antivirus) briefly holding the target makes it fail.
func renameWithRetry(ctx context.Context, oldPath, newPath string) error {
	if runtime.GOOS != "windows" {
		return os.Rename(oldPath, newPath)
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxElapsedTime = time.Second
	return backoff.Retry(func() error {
		return os.Rename(oldPath, newPath)
	}, backoff.WithContext(bo, ctx))
}
