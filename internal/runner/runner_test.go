package runner

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fenilsonani/winclean/internal/cleaner"
	"github.com/fenilsonani/winclean/internal/config"
	"github.com/fenilsonani/winclean/internal/platform"
	"github.com/fenilsonani/winclean/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	f   *testutil.TestFixture
	cfg *config.Config
	out *bytes.Buffer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	cfg := config.GetDefault()
	cfg.PauseOnExit = false
	return &env{f: testutil.NewFixture(t), cfg: cfg, out: &bytes.Buffer{}}
}

func (e *env) runner(input string, opts ...Option) *Runner {
	base := []Option{
		WithInput(strings.NewReader(input)),
		WithOutput(e.out),
		WithResolver(platform.NewResolver(nil, e.f.Env())),
		WithDiskFree(nil, ""),
		WithInteractive(false),
	}
	return New(e.cfg, append(base, opts...)...)
}

func TestRunFullCleanup(t *testing.T) {
	e := newEnv(t)
	now := time.Now()

	tmp := e.f.CreateFile("Users/test/AppData/Local/Temp/setup.log", 100)
	tmpSub := e.f.CreateFile("Users/test/AppData/Local/Temp/sub/keep.dat", 50)
	chrome := e.f.CreateFile("Users/test/AppData/Local/Google/Chrome/User Data/Default/Cache/Cache_Data/f_000001", 200)
	ff := e.f.CreateFile("Users/test/AppData/Local/Mozilla/Firefox/Profiles/x.default/cache2/entries/ABC", 300)
	oldPf := e.f.CreateFileAt("Windows/Prefetch/OLD.EXE-1.pf", 400, now.Add(-45*24*time.Hour))
	newPf := e.f.CreateFileAt("Windows/Prefetch/NEW.EXE-2.pf", 400, now.Add(-2*24*time.Hour))
	thumb := e.f.CreateFile("Users/test/AppData/Local/Microsoft/Windows/Explorer/thumbcache_96.db", 500)

	summary, err := e.runner("y\n").Run()
	require.NoError(t, err)
	require.NotNil(t, summary)

	for _, p := range []string{tmp, chrome, ff, oldPf, thumb} {
		e.f.AssertFileNotExists(p)
	}
	// Temp is shallow and prefetch is age-filtered
	e.f.AssertFileExists(tmpSub)
	e.f.AssertFileExists(newPf)
	// Browser cache roots survive, their contents don't
	e.f.AssertFileExists(e.f.Path("Users/test/AppData/Local/Google/Chrome/User Data/Default/Cache"))
	e.f.AssertFileNotExists(e.f.Path("Users/test/AppData/Local/Google/Chrome/User Data/Default/Cache/Cache_Data"))

	assert.Equal(t, cleaner.Counters{FilesDeleted: 5, BytesFreed: 1500}, summary.Totals)
	require.Len(t, summary.Categories, 4)
	assert.Equal(t, uint64(500), summary.Categories[1].Totals.BytesFreed)
	assert.Equal(t, 2, summary.Categories[1].Targets)

	out := e.out.String()
	assert.Contains(t, out, "Windows System Cleaner")
	assert.Contains(t, out, "Continue? (y/n): ")
	assert.Contains(t, out, "Starting cleanup...")
	assert.Contains(t, out, "Cleaning Windows temp directories...")
	assert.Contains(t, out, "  Cleaning Chrome Cache...")
	assert.Contains(t, out, "  Cleaning Firefox Cache...")
	assert.NotContains(t, out, "Cleaning Edge Cache", "missing targets are not announced")
	assert.Contains(t, out, "Files deleted: 5")
	assert.NotContains(t, out, "Errors encountered")
	assert.NotContains(t, out, "Press Enter")

	// Category titles appear in table order
	iTemp := strings.Index(out, "Cleaning Windows temp directories...")
	iBrowser := strings.Index(out, "Cleaning browser caches...")
	iPrefetch := strings.Index(out, "Cleaning Windows prefetch...")
	iThumbs := strings.Index(out, "Cleaning thumbnail cache...")
	assert.True(t, iTemp < iBrowser && iBrowser < iPrefetch && iPrefetch < iThumbs, out)
}

func TestRunDeclined(t *testing.T) {
	e := newEnv(t)
	tmp := e.f.CreateFile("Users/test/AppData/Local/Temp/a.tmp", 10)

	summary, err := e.runner("n\n").Run()
	require.NoError(t, err)
	assert.Nil(t, summary)

	e.f.AssertFileExists(tmp)
	assert.Contains(t, e.out.String(), "Operation cancelled.")
	assert.NotContains(t, e.out.String(), "Starting cleanup...")
}

func TestRunDeclinedOnEOF(t *testing.T) {
	e := newEnv(t)
	tmp := e.f.CreateFile("Users/test/AppData/Local/Temp/a.tmp", 10)

	summary, err := e.runner("").Run()
	require.NoError(t, err)
	assert.Nil(t, summary)
	e.f.AssertFileExists(tmp)
}

func TestRunAssumeYesSkipsPrompt(t *testing.T) {
	e := newEnv(t)
	e.cfg.AssumeYes = true
	tmp := e.f.CreateFile("Users/test/AppData/Local/Temp/a.tmp", 10)

	summary, err := e.runner("").Run()
	require.NoError(t, err)
	require.NotNil(t, summary)

	e.f.AssertFileNotExists(tmp)
	assert.NotContains(t, e.out.String(), "Continue?")
}

func TestRunDryRun(t *testing.T) {
	e := newEnv(t)
	e.cfg.DryRun = true
	tmp := e.f.CreateFile("Users/test/AppData/Local/Temp/a.tmp", 10)

	summary, err := e.runner("y\n").Run()
	require.NoError(t, err)

	e.f.AssertFileExists(tmp)
	assert.True(t, summary.DryRun)
	assert.Equal(t, uint64(1), summary.Totals.FilesDeleted)
	assert.Contains(t, e.out.String(), "Dry run")
}

func TestRunLockedFiles(t *testing.T) {
	e := newEnv(t)
	e.f.CreateFile("Users/test/AppData/Local/Temp/one.bin", 100)
	e.f.CreateFile("Users/test/AppData/Local/Temp/two.bin", 200)
	locked := e.f.CreateFile("Users/test/AppData/Local/Temp/three.bin", 300)

	fs := testutil.NewLockingFs(afero.NewOsFs())
	fs.Lock(locked)
	clnr := cleaner.New(e.cfg)
	clnr.SetFs(fs)

	summary, err := e.runner("y\n", WithCleaner(clnr)).Run()
	require.NoError(t, err)

	assert.Equal(t, cleaner.Counters{FilesDeleted: 2, BytesFreed: 300, Errors: 1}, summary.Totals)
	assert.Equal(t, uint64(1), summary.Reasons[cleaner.ErrorFileInUse])
	e.f.AssertFileExists(locked)

	out := e.out.String()
	assert.Contains(t, out, "Errors encountered: 1 (some files may be in use)")
	assert.Contains(t, out, "File is in use: 1")
}

func TestRunDisabledCategory(t *testing.T) {
	e := newEnv(t)
	e.cfg.Categories.Thumbnails = false
	thumb := e.f.CreateFile("Users/test/AppData/Local/Microsoft/Windows/Explorer/thumbcache_96.db", 5)

	summary, err := e.runner("y\n").Run()
	require.NoError(t, err)

	e.f.AssertFileExists(thumb)
	assert.Len(t, summary.Categories, 3)
	assert.NotContains(t, e.out.String(), "Cleaning thumbnail cache...")
}

func TestRunPausesWhenInteractive(t *testing.T) {
	e := newEnv(t)
	e.cfg.PauseOnExit = true

	_, err := e.runner("y\n\n", WithInteractive(true)).Run()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(e.out.String(), "Press Enter to exit...\n"))
}

func TestRunDiskFree(t *testing.T) {
	e := newEnv(t)
	e.cfg.AssumeYes = true

	calls := 0
	probe := func(path string) (uint64, error) {
		assert.Equal(t, `C:\`, path)
		calls++
		return uint64(calls) << 30, nil
	}

	summary, err := e.runner("", WithDiskFree(probe, `C:\`)).Run()
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(1<<30), summary.DiskFreeBefore)
	assert.Equal(t, uint64(2<<30), summary.DiskFreeAfter)
	assert.Contains(t, e.out.String(), "Disk free: 1.0 GiB -> 2.0 GiB")
}

func TestRunDiskFreeError(t *testing.T) {
	e := newEnv(t)
	e.cfg.AssumeYes = true

	probe := func(string) (uint64, error) { return 0, errors.New("no such volume") }

	summary, err := e.runner("", WithDiskFree(probe, "Z:")).Run()
	require.NoError(t, err)
	assert.Zero(t, summary.DiskFreeBefore)
	assert.NotContains(t, e.out.String(), "Disk free")
}

func TestRunBadOutputFormat(t *testing.T) {
	e := newEnv(t)
	e.cfg.Output = "xml"

	_, err := e.runner("y\n").Run()
	assert.Error(t, err)
}
