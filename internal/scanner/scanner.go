// Package scanner measures how much a cleanup would remove without touching
// anything. It walks target directories in parallel with fastwalk and applies
// the same shallow/recursive/age rules the cleaner uses.
package scanner

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/fenilsonani/winclean/internal/config"
	"github.com/fenilsonani/winclean/internal/platform"
)

const secondsPerDay = 24 * 60 * 60

// Scanner previews the cleanup of every enabled category
type Scanner struct {
	config   *config.Config
	resolver *platform.Resolver
	now      func() time.Time
}

// New creates a new Scanner
func New(cfg *config.Config, resolver *platform.Resolver) *Scanner {
	return &Scanner{
		config:   cfg,
		resolver: resolver,
		now:      time.Now,
	}
}

// SetClock sets the time source used for the age cutoff
func (s *Scanner) SetClock(now func() time.Time) {
	s.now = now
}

// ScanAll measures every resolved target of every enabled category, in run order
func (s *Scanner) ScanAll(ctx context.Context) []Footprint {
	cutoff := s.now().Unix() - int64(s.config.PrefetchMaxAgeDays)*secondsPerDay

	var results []Footprint
	for _, cat := range platform.Categories() {
		if !s.config.Categories.Enabled(cat.Name) {
			continue
		}

		for _, target := range s.resolver.Resolve(cat) {
			fp := Footprint{
				Category: cat.Name,
				Label:    target.Label,
				Dir:      target.Dir,
				Mode:     target.Mode,
			}

			files, bytes, err := Measure(ctx, target.Dir, target.Mode, cutoff)
			fp.Files, fp.Bytes = files, bytes
			if err != nil {
				fp.Error = err.Error()
			}
			results = append(results, fp)
		}
	}

	return results
}

// Measure counts the files and bytes below root that a cleanup in mode would
// delete. For ModeAgeFiltered only files modified before cutoff (unix
// seconds) count. Unreadable entries are skipped.
func Measure(ctx context.Context, root string, mode platform.Mode, cutoff int64) (files, bytes int64, err error) {
	root = filepath.Clean(root)

	var fileCount, byteCount atomic.Int64

	conf := fastwalk.Config{
		Follow: false,
	}

	walkErr := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == root {
				return err
			}
			return nil //nolint:nilerr // keep walking past unreadable entries
		}

		if d.IsDir() {
			if path != root && mode != platform.ModeRecursive {
				return fastwalk.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // entry vanished mid-walk
		}

		if mode == platform.ModeAgeFiltered {
			mod := info.ModTime()
			if mod.IsZero() || mod.Unix() >= cutoff {
				return nil
			}
		}

		fileCount.Add(1)
		byteCount.Add(info.Size())
		return nil
	})

	if walkErr != nil && !errors.Is(walkErr, fastwalk.SkipDir) {
		return fileCount.Load(), byteCount.Load(), walkErr
	}

	return fileCount.Load(), byteCount.Load(), nil
}
