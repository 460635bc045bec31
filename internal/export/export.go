// Package export renders a point-in-time snapshot of the ticket store as
// JSON, YAML or TOML.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tkt-dev/tk/internal/debug"
	"github.com/tkt-dev/tk/internal/storage"
	"github.com/tkt-dev/tk/internal/types"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	// FormatJSONL writes one compact ticket object per line and nothing else,
	// for piping into line-oriented tools.
	FormatJSONL Format = "jsonl"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown export format")

// chmod is replaced in tests to simulate filesystems without permission bits.
var chmod = os.Chmod

// ParseFormat accepts json, jsonl/ndjson, yaml/yml and toml in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w %q (valid: json, jsonl, yaml, toml)", ErrUnknownFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Snapshot is the exported document.
type Snapshot struct {
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at" toml:"exported_at"`
	CurrentID  types.TicketID `json:"current_id" yaml:"current_id" toml:"current_id"`
	Count      int            `json:"count" yaml:"count" toml:"count"`
	Tickets    []types.Ticket `json:"tickets" yaml:"tickets" toml:"tickets"`
}

// NewSnapshot captures the store's counter and tickets, ordered by ID.
func NewSnapshot(s *storage.TicketStore) Snapshot {
	currentID, tickets := s.Snapshot()
	return Snapshot{
		ExportedAt: time.Now().UTC().Truncate(time.Second),
		CurrentID:  currentID,
		Count:      len(tickets),
		Tickets:    tickets,
	}
}

// Encode writes snap to w in the given format.
func Encode(w io.Writer, f Format, snap Snapshot) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, t := range snap.Tickets {
			if err := enc.Encode(t); err != nil {
				return fmt.Errorf("ticket %d: %w", t.ID, err)
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(snap)
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
}

// WriteFile encodes snap into path, replacing it atomically.
func WriteFile(path string, f Format, snap Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp export file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		_ = tempFile.Close()    // Best effort: may already be closed before rename
		_ = os.Remove(tempPath) // Best effort: may already be renamed
	}()

	if err := Encode(tempFile, f, snap); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	// Close before rename (required on Windows)
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp export file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to replace export file: %w", err)
	}

	if err := chmod(path, 0o600); err != nil {
		debug.Warnf("failed to set export permissions: %v\n", err)
	}
	return nil
}
