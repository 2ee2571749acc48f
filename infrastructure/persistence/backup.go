package persistence

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"music-contest/infrastructure/logger"
)

const backupTimestampLayout = "20060102T150405"

// CreateBackup copies the database file into backupDir under a timestamped
// name, then prunes the oldest copies beyond retention. Backup filenames sort
// lexicographically by timestamp, so pruning is a sort and a slice.
func CreateBackup(dbPath, backupDir string, retention int) (string, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(dbPath), filepath.Ext(dbPath))
	name := fmt.Sprintf("%s_%s.db", base, time.Now().UTC().Format(backupTimestampLayout))
	dest := filepath.Join(backupDir, name)

	if err := copyFile(dbPath, dest); err != nil {
		return "", fmt.Errorf("copying database: %w", err)
	}

	if err := pruneBackups(backupDir, base, retention); err != nil {
		// The backup itself succeeded; a failed prune is only worth a warning.
		logger.GetLogger().WithField("error", err).Warn("Failed to prune old backups")
	}
	return dest, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return err
	}
	return out.Close()
}

func pruneBackups(backupDir, base string, retention int) error {
	if retention <= 0 {
		return nil
	}
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), base+"_") && strings.HasSuffix(e.Name(), ".db") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= retention {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-retention] {
		if err := os.Remove(filepath.Join(backupDir, name)); err != nil {
			return err
		}
	}
	return nil
}
