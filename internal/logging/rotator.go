package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	logFileName       = "dimmer.log"
	defaultMaxSizeMB  = 10
	backupTimeLayout  = "2006-01-02-15-04-05.000"
	logFilePerm       = 0o600
	bytesPerMegabyte  = 1024 * 1024
	hoursPerDay       = 24
	compressedSuffix  = ".gz"
	defaultMaxBackups = 3
)

// LogRotator is an io.Writer appending to dimmer.log in a directory and
// rolling it over once it grows past the size limit. Rolled files are
// optionally gzipped and pruned by age and count.
type LogRotator struct {
	mu          sync.Mutex
	baseDir     string
	maxSize     int64
	maxAge      time.Duration
	maxBackups  int
	compress    bool
	currentFile *os.File
	currentSize int64
}

// NewLogRotator opens (or creates) the log file in baseDir.
// Non-positive limits fall back to defaults; maxAgeDays <= 0 keeps files forever.
func NewLogRotator(baseDir string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) (*LogRotator, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = defaultMaxSizeMB
	}
	if maxBackups <= 0 {
		maxBackups = defaultMaxBackups
	}

	r := &LogRotator{
		baseDir:    baseDir,
		maxSize:    int64(maxSizeMB) * bytesPerMegabyte,
		maxAge:     time.Duration(maxAgeDays) * hoursPerDay * time.Hour,
		maxBackups: maxBackups,
		compress:   compress,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the path of the active log file.
func (r *LogRotator) Path() string {
	return filepath.Join(r.baseDir, logFileName)
}

func (r *LogRotator) open() error {
	r.currentSize = 0
	if info, err := os.Stat(r.Path()); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(r.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	r.currentFile = file
	return nil
}

// Write implements io.Writer.
func (r *LogRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}

	if r.currentSize > 0 && r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

// rotate must be called with r.mu held.
func (r *LogRotator) rotate() error {
	if err := r.currentFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close log file: %v\n", err)
	}
	r.currentFile = nil

	backupPath := r.Path() + "." + time.Now().Format(backupTimeLayout)
	if err := os.Rename(r.Path(), backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.compress {
		if err := gzipFile(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to compress log file %s: %v\n", backupPath, err)
		} else if err := os.Remove(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove uncompressed log file %s: %v\n", backupPath, err)
		}
	}

	r.prune()
	return r.open()
}

func gzipFile(path string) (err error) {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(path+compressedSuffix, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	gz := gzip.NewWriter(out)
	if _, err = io.Copy(gz, in); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}

// prune drops rolled files older than maxAge, then the oldest beyond maxBackups.
func (r *LogRotator) prune() {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return
	}

	now := time.Now()
	var backups []os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), logFileName+".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if r.maxAge > 0 && now.Sub(info.ModTime()) > r.maxAge {
			_ = os.Remove(filepath.Join(r.baseDir, info.Name()))
			continue
		}
		backups = append(backups, info)
	}

	if len(backups) <= r.maxBackups {
		return
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Name() < backups[j].Name()
	})
	for _, info := range backups[:len(backups)-r.maxBackups] {
		_ = os.Remove(filepath.Join(r.baseDir, info.Name()))
	}
}

// Close closes the active log file.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}
