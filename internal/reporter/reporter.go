package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/fenilsonani/winclean/internal/cleaner"
	"github.com/fenilsonani/winclean/internal/scanner"
	"github.com/fenilsonani/winclean/internal/ui/styles"
	"github.com/fenilsonani/winclean/pkg/utils"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// ParseFormat maps a config/flag value to an OutputFormat
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML, FormatSummary:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// CategorySummary is the outcome of one category within a run
type CategorySummary struct {
	Name    string           `json:"name" yaml:"name"`
	Targets int              `json:"targets" yaml:"targets"`
	Totals  cleaner.Counters `json:"totals" yaml:"totals"`
}

// Summary is everything the final report needs about a run
type Summary struct {
	RunID          string
	StartedAt      time.Time
	Duration       time.Duration
	DryRun         bool
	Totals         cleaner.Counters
	Reasons        map[cleaner.ErrorReason]uint64
	Categories     []CategorySummary
	DiskFreeBefore uint64 // zero when unknown
	DiskFreeAfter  uint64
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
	theme  *styles.Theme
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
		theme:  styles.New(writer),
	}
}

// Report writes the final report of a cleanup run
func (r *Reporter) Report(s *Summary) error {
	switch r.format {
	case FormatSummary:
		return r.reportSummary(s)
	case FormatTable:
		if err := r.reportSummary(s); err != nil {
			return err
		}
		return r.reportCategoryTable(s)
	case FormatJSON:
		return r.reportJSON(newDocument(s))
	case FormatYAML:
		return r.reportYAML(newDocument(s))
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary prints the classic end-of-run block
func (r *Reporter) reportSummary(s *Summary) error {
	t := r.theme

	fmt.Fprintf(r.writer, "\n%s\n", t.Title.Render("Cleanup completed!"))
	fmt.Fprintf(r.writer, "===================\n")
	if s.DryRun {
		fmt.Fprintf(r.writer, "%s\n", t.Dim.Render("Dry run: nothing was deleted, figures show what would be freed."))
	}
	fmt.Fprintf(r.writer, "Files deleted: %d\n", s.Totals.FilesDeleted)
	fmt.Fprintf(r.writer, "Space freed: %s\n", t.Size.Render(utils.FormatMB(s.Totals.BytesFreed)))

	if s.Totals.Errors > 0 {
		fmt.Fprintf(r.writer, "%s\n", t.Warning.Render(
			fmt.Sprintf("Errors encountered: %d (some files may be in use)", s.Totals.Errors)))
		fmt.Fprint(r.writer, cleaner.FormatErrorSummary(s.Reasons))
	}

	if s.DiskFreeBefore > 0 && s.DiskFreeAfter > 0 {
		fmt.Fprintf(r.writer, "Disk free: %s -> %s\n",
			utils.FormatBytes(s.DiskFreeBefore), utils.FormatBytes(s.DiskFreeAfter))
	}

	return nil
}

// reportCategoryTable prints one row per category with its share of freed space
func (r *Reporter) reportCategoryTable(s *Summary) error {
	t := r.theme
	bar := newShareBar()

	fmt.Fprintf(r.writer, "\n%s\n", t.Heading.Render("By category"))
	fmt.Fprintf(r.writer, "%-12s %8s %12s %7s  %s\n", "Category", "Files", "Freed", "Errors", "Share")

	for _, c := range s.Categories {
		share := 0.0
		if s.Totals.BytesFreed > 0 {
			share = float64(c.Totals.BytesFreed) / float64(s.Totals.BytesFreed)
		}
		fmt.Fprintf(r.writer, "%-12s %8s %12s %7d  %s %3.0f%%\n",
			c.Name,
			utils.FormatCount(c.Totals.FilesDeleted),
			utils.FormatBytes(c.Totals.BytesFreed),
			c.Totals.Errors,
			bar.ViewAs(share),
			share*100)
	}

	fmt.Fprintf(r.writer, "%s\n", t.Dim.Render(fmt.Sprintf("Run %s took %s", s.RunID, s.Duration.Round(time.Millisecond))))
	return nil
}

// ReportScan writes the preview produced by the scan command
func (r *Reporter) ReportScan(results []scanner.Footprint) error {
	switch r.format {
	case FormatSummary, FormatTable:
		return r.reportScanTable(results)
	case FormatJSON:
		return r.reportJSON(scanDocument{Targets: results, Totals: scanner.Total(results)})
	case FormatYAML:
		return r.reportYAML(scanDocument{Targets: results, Totals: scanner.Total(results)})
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) reportScanTable(results []scanner.Footprint) error {
	t := r.theme
	total := scanner.Total(results)
	bar := newShareBar()

	fmt.Fprintf(r.writer, "%s\n", t.Title.Render("=== Cleanable Space ==="))

	category := ""
	for _, fp := range results {
		if fp.Category != category {
			category = fp.Category
			fmt.Fprintf(r.writer, "\n%s\n", t.Category.Render(category))
		}

		share := 0.0
		if total.Bytes > 0 {
			share = float64(fp.Bytes) / float64(total.Bytes)
		}
		fmt.Fprintf(r.writer, "  %-26s %8s files %12s  %s\n",
			fp.Label,
			utils.FormatCount(uint64(fp.Files)),
			t.Size.Render(utils.FormatBytes(uint64(fp.Bytes))),
			bar.ViewAs(share))
		fmt.Fprintf(r.writer, "  %s\n", t.Target.Render(fp.Dir))
		if fp.Error != "" {
			fmt.Fprintf(r.writer, "  %s\n", t.Error.Render(fp.Error))
		}
	}

	fmt.Fprintf(r.writer, "\nTotal: %s files, %s\n",
		utils.FormatCount(uint64(total.Files)), utils.FormatBytes(uint64(total.Bytes)))
	return nil
}

// document is the machine-readable form of a Summary
type document struct {
	RunID          string            `json:"run_id" yaml:"run_id"`
	Timestamp      string            `json:"timestamp" yaml:"timestamp"`
	DurationMillis int64             `json:"duration_ms" yaml:"duration_ms"`
	DryRun         bool              `json:"dry_run" yaml:"dry_run"`
	FilesDeleted   uint64            `json:"files_deleted" yaml:"files_deleted"`
	BytesFreed     uint64            `json:"bytes_freed" yaml:"bytes_freed"`
	SpaceFreed     string            `json:"space_freed" yaml:"space_freed"`
	Errors         uint64            `json:"errors" yaml:"errors"`
	ErrorReasons   map[string]uint64 `json:"error_reasons,omitempty" yaml:"error_reasons,omitempty"`
	Categories     []CategorySummary `json:"categories" yaml:"categories"`
	DiskFreeBefore uint64            `json:"disk_free_before,omitempty" yaml:"disk_free_before,omitempty"`
	DiskFreeAfter  uint64            `json:"disk_free_after,omitempty" yaml:"disk_free_after,omitempty"`
}

func newDocument(s *Summary) document {
	doc := document{
		RunID:          s.RunID,
		Timestamp:      s.StartedAt.Format(time.RFC3339),
		DurationMillis: s.Duration.Milliseconds(),
		DryRun:         s.DryRun,
		FilesDeleted:   s.Totals.FilesDeleted,
		BytesFreed:     s.Totals.BytesFreed,
		SpaceFreed:     utils.FormatMB(s.Totals.BytesFreed),
		Errors:         s.Totals.Errors,
		Categories:     s.Categories,
		DiskFreeBefore: s.DiskFreeBefore,
		DiskFreeAfter:  s.DiskFreeAfter,
	}
	if doc.Categories == nil {
		doc.Categories = []CategorySummary{}
	}
	for reason, n := range s.Reasons {
		if n == 0 {
			continue
		}
		if doc.ErrorReasons == nil {
			doc.ErrorReasons = make(map[string]uint64)
		}
		doc.ErrorReasons[reason.Key()] += n
	}
	return doc
}

type scanDocument struct {
	Targets []scanner.Footprint `json:"targets" yaml:"targets"`
	Totals  scanner.Footprint   `json:"totals" yaml:"totals"`
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(v any) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(v any) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(v)
}

// SaveToFile saves the report to a file
func SaveToFile(s *Summary, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return New(file, format).Report(s)
}

func newShareBar() progress.Model {
	return progress.New(
		progress.WithSolidFill(string(styles.Primary)),
		progress.WithWidth(16),
		progress.WithoutPercentage(),
	)
}
