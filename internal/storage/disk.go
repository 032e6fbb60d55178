package storage

import (
	"fmt"
	"os"
	"time"
)

// Info describes a home store on disk.
type Info struct {
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

// Stat returns on-disk information for the store at path. SQLite stores
// include their -wal and -shm side files in the size.
func Stat(path string) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	info := Info{Path: path, SizeBytes: st.Size(), ModTime: st.ModTime()}
	for _, side := range []string{path + "-wal", path + "-shm"} {
		if s, err := os.Stat(side); err == nil {
			info.SizeBytes += s.Size()
		}
	}
	return info, nil
}
