package cleaner

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fenilsonani/winclean/internal/config"
	"github.com/spf13/afero"
)

const secondsPerDay = 24 * 60 * 60

// Cleaner deletes the contents of cache and temp directories. All failures
// are absorbed into the Stats passed to each call; nothing is returned.
type Cleaner struct {
	config *config.Config
	fs     afero.Fs
	logger *log.Logger
	now    func() time.Time
}

// New creates a new Cleaner operating on the real filesystem
func New(cfg *config.Config) *Cleaner {
	if cfg == nil {
		cfg = config.GetDefault()
	}
	return &Cleaner{
		config: cfg,
		fs:     afero.NewOsFs(),
		logger: log.New(io.Discard),
		now:    time.Now,
	}
}

// SetFs sets the filesystem the cleaner operates on
func (c *Cleaner) SetFs(fs afero.Fs) {
	c.fs = fs
}

// SetLogger sets the logger used for per-file diagnostics
func (c *Cleaner) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// SetClock sets the time source used to compute age cutoffs
func (c *Cleaner) SetClock(now func() time.Time) {
	c.now = now
}

// CleanDirectory deletes every file directly inside dir. When recursive is
// set, subdirectories are cleaned the same way and then removed if they
// ended up empty; otherwise they are left alone.
//
// A directory that cannot be read is treated as having nothing to clean.
func (c *Cleaner) CleanDirectory(dir string, stats *Stats, recursive bool) {
	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		c.logger.Debug("nothing to clean", "dir", dir, "err", err)
		return
	}

	before := stats.Counters()

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Re-stat: the entry may have changed or vanished since the listing
		info, err := c.lstat(path)
		if err != nil {
			continue
		}

		if info.IsDir() {
			if !recursive {
				continue
			}
			c.CleanDirectory(path, stats, true)
			if !c.config.DryRun {
				// Fails while the directory still has locked files in it; that's fine.
				_ = c.fs.Remove(path)
			}
			continue
		}

		c.removeFile(path, info, stats)
	}

	delta := stats.Counters().Sub(before)
	c.logger.Debug("cleaned directory",
		"dir", dir,
		"recursive", recursive,
		"files", delta.FilesDeleted,
		"bytes", delta.BytesFreed,
		"errors", delta.Errors)
}

// CleanOlderThan deletes files directly inside dir whose modification time
// is more than maxAgeDays days before now. Subdirectories are never entered.
// The cutoff is taken once, before the directory is read.
func (c *Cleaner) CleanOlderThan(dir string, stats *Stats, maxAgeDays uint) {
	now := c.now().Unix()
	maxAge := int64(maxAgeDays) * secondsPerDay

	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		c.logger.Debug("nothing to clean", "dir", dir, "err", err)
		return
	}

	before := stats.Counters()

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info, err := c.lstat(path)
		if err != nil || info.IsDir() {
			continue
		}

		if fileAge(now, info.ModTime()) > maxAge {
			c.removeFile(path, info, stats)
		}
	}

	delta := stats.Counters().Sub(before)
	c.logger.Debug("cleaned old files",
		"dir", dir,
		"max_age_days", maxAgeDays,
		"files", delta.FilesDeleted,
		"bytes", delta.BytesFreed,
		"errors", delta.Errors)
}

// removeFile deletes a single non-directory entry and records the outcome
func (c *Cleaner) removeFile(path string, info os.FileInfo, stats *Stats) {
	var size uint64
	if info.Size() > 0 {
		size = uint64(info.Size())
	}

	if c.config.DryRun {
		stats.AddFile(size)
		return
	}

	if err := c.fs.Remove(path); err != nil {
		delErr := CategorizeError(path, err)
		c.logger.Debug("delete failed", "path", path, "reason", delErr.Reason, "err", err)
		stats.AddError(delErr.Reason)
		return
	}

	stats.AddFile(size)
}

// lstat stats path without following symlinks when the filesystem allows it
func (c *Cleaner) lstat(path string) (os.FileInfo, error) {
	if lst, ok := c.fs.(afero.Lstater); ok {
		info, _, err := lst.LstatIfPossible(path)
		return info, err
	}
	return c.fs.Stat(path)
}

// fileAge returns the age in whole seconds. An unknown or future
// modification time counts as age zero so the file is kept.
func fileAge(now int64, modified time.Time) int64 {
	if modified.IsZero() {
		return 0
	}
	age := now - modified.Unix()
	if age < 0 {
		return 0
	}
	return age
}
