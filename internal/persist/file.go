// Package persist provides the durable backends behind shop.Gateway: a
// flat-file JSON snapshot store and a PostgreSQL store. One backend is
// selected at startup; every handler goes through the same gateway.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/strumworks/guitarshop/internal/shop"
)

// FileGateway persists the working set as one JSON object
// ({users, admins, guitars, orders}) at a fixed path, overwritten
// wholesale on every flush.
type FileGateway struct {
	path string
}

func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

// Load reads the snapshot file. An absent file yields the seed working set
// without creating the file; a present but unparsable file is an error so
// a corrupt store fails loudly instead of being shadowed by seed data.
func (g *FileGateway) Load(ctx context.Context) (shop.Snapshot, error) {
	b, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		return shop.Seed(), nil
	}
	if err != nil {
		return shop.Snapshot{}, fmt.Errorf("read %s: %w", g.path, err)
	}
	var snap shop.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return shop.Snapshot{}, fmt.Errorf("parse %s: %w", g.path, err)
	}
	return snap, nil
}

// Flush writes to a temp file in the same directory and renames it over
// the store, so a crash mid-write never leaves a torn snapshot behind.
func (g *FileGateway) Flush(ctx context.Context, snap shop.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, g.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
