package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// BackupVersion is the current backup document version.
const BackupVersion = 1

// Backup is a snapshot of every known key, as stored.
type Backup struct {
	Version    int               `json:"version"`
	ExportedAt string            `json:"exportedAt"`
	Values     map[string]string `json:"values"`
}

// knownKeys are the keys a backup carries.
var knownKeys = append([]string{KeyAuth, KeyUsers}, UserDataKeys...)

// ExportAll snapshots every known key present in s.
func ExportAll(ctx context.Context, s Store) (Backup, error) {
	b := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Values:     map[string]string{},
	}
	for _, k := range knownKeys {
		v, err := s.Get(ctx, k)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return Backup{}, err
		}
		b.Values[k] = v
	}
	return b, nil
}

// Import writes the backup's known keys into s, replacing what is there.
// Unknown keys are skipped. It returns how many keys were written.
func Import(ctx context.Context, s Store, b Backup) (int, error) {
	if b.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version %d", b.Version)
	}
	imported := 0
	for _, k := range knownKeys {
		v, ok := b.Values[k]
		if !ok {
			continue
		}
		if err := s.Set(ctx, k, v); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// IsKnownKey reports whether key belongs to a MindMate entity.
func IsKnownKey(key string) bool {
	return slices.Contains(knownKeys, key)
}
