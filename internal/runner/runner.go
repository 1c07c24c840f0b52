// Package runner drives one interactive cleanup: confirmation, the fixed
// sequence of categories, and the final report.
package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fenilsonani/winclean/internal/cleaner"
	"github.com/fenilsonani/winclean/internal/config"
	"github.com/fenilsonani/winclean/internal/platform"
	"github.com/fenilsonani/winclean/internal/reporter"
	"github.com/fenilsonani/winclean/internal/ui"
	"github.com/fenilsonani/winclean/internal/ui/styles"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

// Runner runs the cleanup flow against the fixed Windows target table
type Runner struct {
	config   *config.Config
	in       *bufio.Reader
	out      io.Writer
	theme    *styles.Theme
	logger   *log.Logger
	resolver *platform.Resolver
	cleaner  *cleaner.Cleaner
	runID    string

	diskFree    func(path string) (uint64, error)
	drive       string
	interactive bool
	now         func() time.Time
}

// Option configures a Runner
type Option func(*Runner)

// WithInput sets where answers are read from (default os.Stdin)
func WithInput(in io.Reader) Option {
	return func(r *Runner) { r.in = bufio.NewReader(in) }
}

// WithOutput sets where progress and the report are written (default os.Stdout)
func WithOutput(out io.Writer) Option {
	return func(r *Runner) { r.out = out }
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithResolver sets how category templates become directories
func WithResolver(resolver *platform.Resolver) Option {
	return func(r *Runner) { r.resolver = resolver }
}

// WithCleaner sets the cleaner used for every target
func WithCleaner(c *cleaner.Cleaner) Option {
	return func(r *Runner) { r.cleaner = c }
}

// WithDiskFree sets the free-space probe and the path it is asked about.
// A nil probe disables the before/after disk line.
func WithDiskFree(probe func(path string) (uint64, error), path string) Option {
	return func(r *Runner) {
		r.diskFree = probe
		r.drive = path
	}
}

// WithInteractive overrides terminal detection for the exit pause
func WithInteractive(interactive bool) Option {
	return func(r *Runner) { r.interactive = interactive }
}

// New creates a Runner for cfg
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		config:      cfg,
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		logger:      log.New(io.Discard),
		runID:       uuid.NewString(),
		diskFree:    platform.DiskFree,
		drive:       platform.SystemDrive(nil),
		interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.logger = r.logger.With("run", r.runID)
	if r.resolver == nil {
		r.resolver = platform.NewResolver(nil, nil)
	}
	if r.cleaner == nil {
		r.cleaner = cleaner.New(cfg)
		r.cleaner.SetLogger(r.logger.WithPrefix("cleaner"))
	}
	r.theme = styles.New(r.out)

	return r
}

// Run asks for confirmation, cleans every enabled category and prints the
// report. It returns a nil Summary if the user declined.
func (r *Runner) Run() (*reporter.Summary, error) {
	format, err := reporter.ParseFormat(r.config.Output)
	if err != nil {
		return nil, err
	}

	r.printBanner()

	if !r.config.AssumeYes {
		ok, err := ui.Confirm(r.in, r.out, "Continue? (y/n): ")
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			fmt.Fprintln(r.out, "Operation cancelled.")
			r.logger.Info("cleanup declined")
			return nil, nil
		}
	}

	summary := r.Clean()

	if err := reporter.New(r.out, format).Report(summary); err != nil {
		return summary, fmt.Errorf("failed to generate report: %w", err)
	}

	if r.config.PauseOnExit && r.interactive {
		if err := ui.WaitForEnter(r.in, r.out); err != nil {
			r.logger.Debug("exit pause", "err", err)
		}
	}

	return summary, nil
}

// Clean runs every enabled category in order against one shared Stats.
// Nothing in here fails: unreadable or locked entries end up in the counters.
func (r *Runner) Clean() *reporter.Summary {
	start := r.now()
	stats := cleaner.NewStats()

	summary := &reporter.Summary{
		RunID:     r.runID,
		StartedAt: start,
		DryRun:    r.config.DryRun,
	}

	fmt.Fprintf(r.out, "\n%s\n\n", r.theme.Heading.Render("Starting cleanup..."))
	if !platform.IsElevated() {
		r.logger.Warn("not running elevated, system directories will be partly skipped")
	}

	summary.DiskFreeBefore = r.probeDiskFree()

	for _, cat := range platform.Categories() {
		if !r.config.Categories.Enabled(cat.Name) {
			r.logger.Debug("category disabled", "category", cat.Name)
			continue
		}

		before := stats.Counters()
		targets := r.cleanCategory(cat, stats)

		summary.Categories = append(summary.Categories, reporter.CategorySummary{
			Name:    cat.Name,
			Targets: targets,
			Totals:  stats.Counters().Sub(before),
		})
	}

	summary.DiskFreeAfter = r.probeDiskFree()
	summary.Totals = stats.Counters()
	summary.Reasons = make(map[cleaner.ErrorReason]uint64, len(stats.Reasons))
	for reason, n := range stats.Reasons {
		summary.Reasons[reason] = n
	}
	summary.Duration = r.now().Sub(start)

	r.logger.Info("cleanup finished",
		"files", summary.Totals.FilesDeleted,
		"bytes", summary.Totals.BytesFreed,
		"errors", summary.Totals.Errors,
		"dry_run", summary.DryRun)

	return summary
}

// cleanCategory announces cat and cleans each of its resolved targets,
// returning how many targets were found
func (r *Runner) cleanCategory(cat platform.Category, stats *cleaner.Stats) int {
	fmt.Fprintln(r.out, r.theme.Category.Render(cat.Title))

	targets := r.resolver.Resolve(cat)
	for _, t := range targets {
		if t.Announce {
			fmt.Fprintf(r.out, "  Cleaning %s...\n", t.Label)
		}
		r.logger.Info("cleaning", "category", cat.Name, "dir", t.Dir, "mode", t.Mode)

		switch t.Mode {
		case platform.ModeShallow:
			r.cleaner.CleanDirectory(t.Dir, stats, false)
		case platform.ModeRecursive:
			r.cleaner.CleanDirectory(t.Dir, stats, true)
		case platform.ModeAgeFiltered:
			r.cleaner.CleanOlderThan(t.Dir, stats, r.config.PrefetchMaxAgeDays)
		}
	}

	return len(targets)
}

func (r *Runner) printBanner() {
	fmt.Fprintln(r.out, r.theme.Title.Render("Windows System Cleaner"))
	fmt.Fprintln(r.out, "========================")
	fmt.Fprintln(r.out, "This tool will clean temporary files and browser caches.")
	fmt.Fprintln(r.out, "Personal files and documents are not touched.")
	if r.config.DryRun {
		fmt.Fprintln(r.out, r.theme.Dim.Render("Dry run: nothing will be deleted."))
	}
	fmt.Fprintln(r.out)
}

func (r *Runner) probeDiskFree() uint64 {
	if r.diskFree == nil {
		return 0
	}
	free, err := r.diskFree(r.drive)
	if err != nil {
		r.logger.Debug("disk free unavailable", "path", r.drive, "err", err)
		return 0
	}
	return free
}
