// Package storage provides disk usage helpers for storage paths.
package storage

import "os"

// databaseFiles returns the SQLite file family for a database path: the
// main file plus the WAL and shared-memory side files.
func databaseFiles(path string) []string {
	return []string{path, path + "-wal", path + "-shm"}
}

// diskUsageBytes sums the sizes of the given files. Missing files
// contribute 0; the WAL side files only exist while the database is open.
func diskUsageBytes(paths ...string) (int64, error) {
	var total int64
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, err
		}
		total += info.Size()
	}
	return total, nil
}
