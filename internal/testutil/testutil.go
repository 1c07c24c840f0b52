// Package testutil provides test helpers and fixtures for winclean tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// TestFixture holds a temp directory laid out like the parts of a Windows
// profile that get cleaned
type TestFixture struct {
	T       *testing.T
	RootDir string // Root temp directory (auto-cleaned)

	TempDir      string
	SystemRoot   string
	LocalAppData string
	AppData      string
}

// NewFixture creates a new test fixture with the standard directory structure
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	root := t.TempDir()

	f := &TestFixture{
		T:            t,
		RootDir:      root,
		TempDir:      filepath.Join(root, "Users", "test", "AppData", "Local", "Temp"),
		SystemRoot:   filepath.Join(root, "Windows"),
		LocalAppData: filepath.Join(root, "Users", "test", "AppData", "Local"),
		AppData:      filepath.Join(root, "Users", "test", "AppData", "Roaming"),
	}

	for _, dir := range []string{f.TempDir, f.SystemRoot, f.LocalAppData, f.AppData} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	return f
}

// Env returns a lookup function resolving the variables the cleanup
// targets are built from to the fixture's directories
func (f *TestFixture) Env() func(string) (string, bool) {
	vars := map[string]string{
		"TEMP":         f.TempDir,
		"TMP":          f.TempDir,
		"SystemRoot":   f.SystemRoot,
		"LOCALAPPDATA": f.LocalAppData,
		"APPDATA":      f.AppData,
	}
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file of the given size and returns its path
func (f *TestFixture) CreateFile(relPath string, size int) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, make([]byte, size), 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileAt creates a file and sets its modification time
func (f *TestFixture) CreateFileAt(relPath string, size int, modified time.Time) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, size)
	if err := os.Chtimes(fullPath, modified, modified); err != nil {
		f.T.Fatalf("failed to set file time for %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileWithAge creates a file whose modification time is age before now
func (f *TestFixture) CreateFileWithAge(relPath string, size int, age time.Duration) string {
	f.T.Helper()
	return f.CreateFileAt(relPath, size, time.Now().Add(-age))
}

// CreateDir creates a directory and returns its path
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateSymlink creates a symbolic link, skipping the test where the
// platform or user is not allowed to
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := filepath.Join(f.RootDir, linkPath)
	if err := os.MkdirAll(filepath.Dir(fullLinkPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullLinkPath, err)
	}

	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Skipf("symlinks unavailable: %v", err)
	}

	return fullLinkPath
}

// Path returns the full path for a relative path within the fixture
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// FileExists checks if a path exists without following symlinks
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// AssertFileExists fails the test if the file doesn't exist
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// =============================================================================
// Filesystem Doubles
// =============================================================================

// LockingFs wraps a filesystem and refuses to remove locked paths, the way
// Windows refuses to delete a file another process holds open
type LockingFs struct {
	afero.Fs

	mu     sync.Mutex
	locked map[string]syscall.Errno
}

// NewLockingFs wraps fs. Nothing is locked initially.
func NewLockingFs(fs afero.Fs) *LockingFs {
	return &LockingFs{Fs: fs, locked: make(map[string]syscall.Errno)}
}

// Lock makes Remove of path fail with EBUSY
func (l *LockingFs) Lock(path string) {
	l.LockWith(path, syscall.EBUSY)
}

// LockWith makes Remove of path fail with errno
func (l *LockingFs) LockWith(path string, errno syscall.Errno) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked[filepath.Clean(path)] = errno
}

// Remove implements afero.Fs
func (l *LockingFs) Remove(name string) error {
	l.mu.Lock()
	errno, ok := l.locked[filepath.Clean(name)]
	l.mu.Unlock()
	if ok {
		return &os.PathError{Op: "remove", Path: name, Err: errno}
	}
	return l.Fs.Remove(name)
}

// LstatIfPossible implements afero.Lstater
func (l *LockingFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	if lst, ok := l.Fs.(afero.Lstater); ok {
		return lst.LstatIfPossible(name)
	}
	info, err := l.Fs.Stat(name)
	return info, false, err
}

// =============================================================================
// Utility Functions
// =============================================================================

// CountFiles returns the number of non-directory entries under path
func CountFiles(path string) (int, error) {
	var count int
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
		}
		return nil
	})
	return count, err
}

// SkipIfRoot skips the test if running as root, where permission bits
// don't stop deletion
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("skipping test when running as root")
	}
}
