package platform

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Mode selects which cleaning policy applies to a target directory
type Mode int

const (
	// ModeShallow deletes the files directly inside the directory
	ModeShallow Mode = iota
	// ModeRecursive deletes everything below the directory, pruning emptied subdirectories
	ModeRecursive
	// ModeAgeFiltered deletes direct files older than the configured age
	ModeAgeFiltered
)

// String returns a short name for the mode
func (m Mode) String() string {
	switch m {
	case ModeShallow:
		return "shallow"
	case ModeRecursive:
		return "recursive"
	case ModeAgeFiltered:
		return "age-filtered"
	default:
		return "unknown"
	}
}

// MarshalText renders the mode by name in json and yaml reports
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Target is one directory template inside a category.
//
// Path may reference environment variables as ${NAME} or ${NAME:-default}
// and uses forward slashes. When Pattern is set, Path is the base directory
// and Pattern a doublestar glob below it; every matching directory becomes
// its own target.
type Target struct {
	Label    string
	Path     string
	Pattern  string
	Mode     Mode
	Announce bool // print "  Cleaning <Label>..." before cleaning it
}

// Category is a named group of targets cleaned together
type Category struct {
	Name    string
	Title   string // progress line printed when the category starts
	Targets []Target
}

// ResolvedTarget is a Target bound to an existing directory
type ResolvedTarget struct {
	Target
	Dir string
}

// LookupFunc looks up an environment variable, like os.LookupEnv
type LookupFunc func(string) (string, bool)

// Resolver turns category templates into concrete, existing directories
type Resolver struct {
	fs     afero.Fs
	lookup LookupFunc
}

// NewResolver creates a Resolver. A nil fs means the OS filesystem and a nil
// lookup means the process environment.
func NewResolver(fs afero.Fs, lookup LookupFunc) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Resolver{fs: fs, lookup: lookup}
}

// Resolve returns the existing directories for cat, in table order.
// Targets whose variables are unset, that don't exist, or that duplicate an
// earlier directory of the same category are dropped.
func (r *Resolver) Resolve(cat Category) []ResolvedTarget {
	var resolved []ResolvedTarget
	seen := make(map[string]bool)

	add := func(t Target, dir string) {
		// Windows paths are case-insensitive; %TEMP% and %TMP% usually coincide
		key := strings.ToLower(dir)
		if seen[key] || !r.isDir(dir) {
			return
		}
		seen[key] = true
		resolved = append(resolved, ResolvedTarget{Target: t, Dir: dir})
	}

	for _, t := range cat.Targets {
		base, ok := r.Expand(t.Path)
		if !ok {
			continue
		}

		if t.Pattern == "" {
			add(t, base)
			continue
		}

		for _, dir := range r.glob(base, t.Pattern) {
			add(t, dir)
		}
	}

	return resolved
}

// Expand substitutes ${NAME} and ${NAME:-default} references in tmpl. It
// reports false if a variable without default is unset or empty.
func (r *Resolver) Expand(tmpl string) (string, bool) {
	ok := true
	out := os.Expand(tmpl, func(ref string) string {
		name, def, hasDefault := strings.Cut(ref, ":-")
		if v, found := r.lookup(name); found && v != "" {
			return v
		}
		if hasDefault {
			return def
		}
		ok = false
		return ""
	})
	if !ok {
		return "", false
	}
	return filepath.Clean(filepath.FromSlash(out)), true
}

// glob matches pattern below base and returns absolute paths in sorted order
func (r *Resolver) glob(base, pattern string) []string {
	if !r.isDir(base) {
		return nil
	}

	fsys := afero.NewIOFS(afero.NewBasePathFs(r.fs, base))
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil
	}
	sort.Strings(matches)

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(base, filepath.FromSlash(m)))
	}
	return paths
}

func (r *Resolver) isDir(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && info.IsDir()
}

// SystemDrive returns the root of the system drive, e.g. `C:\`
func SystemDrive(lookup LookupFunc) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	drive, ok := lookup("SystemDrive")
	if !ok || drive == "" {
		drive = "C:"
	}
	return strings.TrimRight(drive, `\/`) + `\`
}
