package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string     `json:"db_path"`
	DBSizeBytes int64      `json:"db_size_bytes"`
	TotalKeys   int        `json:"total_keys"`
	Keys        []KeyStats `json:"keys"`
}

// KeyStats describes one stored value.
type KeyStats struct {
	Key       string `json:"key"`
	Bytes     int    `json:"bytes"`
	UpdatedAt string `json:"updated_at"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath, Keys: []KeyStats{}}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, LENGTH(CAST(value AS BLOB)), updated_at
		FROM kv ORDER BY key`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ks KeyStats
		if err := rows.Scan(&ks.Key, &ks.Bytes, &ks.UpdatedAt); err != nil {
			return st, err
		}
		st.Keys = append(st.Keys, ks)
	}
	st.TotalKeys = len(st.Keys)

	return st, rows.Err()
}
