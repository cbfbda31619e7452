package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Backup copies the uploads folder once a day at a fixed local time and prunes
// copies older than Retention.
type Backup struct {
	Src       string
	Dest      string
	Retention time.Duration
	Hour      int
	Minute    int
	Logger    zerolog.Logger
}

// Run blocks until ctx is cancelled.
func (b *Backup) Run(ctx context.Context) {
	for {
		next := NextRun(time.Now(), b.Hour, b.Minute)
		b.Logger.Info().Time("next_run", next).Msg("next uploads backup scheduled")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if dest, err := b.RunOnce(time.Now()); err != nil {
			b.Logger.Error().Err(err).Msg("uploads backup failed")
		} else {
			b.Logger.Info().Str("dest", dest).Msg("uploads backed up")
		}
	}
}

// RunOnce copies Src into a timestamped folder under Dest, then removes expired backups.
func (b *Backup) RunOnce(now time.Time) (string, error) {
	dest := filepath.Join(b.Dest, now.Format("2006-01-02_15-04-05"))
	if err := CopyDir(b.Src, dest); err != nil {
		return "", err
	}
	removed, err := CleanupOldBackups(b.Dest, b.Retention, now)
	if err != nil {
		b.Logger.Warn().Err(err).Msg("prune old backups")
	}
	for _, r := range removed {
		b.Logger.Info().Str("path", r).Msg("removed old backup")
	}
	return dest, nil
}

// NextRun is the first hour:min strictly after now.
func NextRun(now time.Time, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func CopyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())
		if entry.IsDir() {
			err = CopyDir(srcPath, destPath)
		} else {
			err = copyFile(srcPath, destPath)
		}
		if err != nil {
			return err
		}
	}
	return nil
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
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// CleanupOldBackups removes backup folders last modified before now-retention.
func CleanupOldBackups(backupDir string, retention time.Duration, now time.Time) ([]string, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return nil, err
	}
	cutoff := now.Add(-retention)

	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(backupDir, entry.Name())
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(folder); err != nil {
			return removed, err
		}
		removed = append(removed, folder)
	}
	return removed, nil
}
