// Package organizer tidies the attachment folder tree. Downloaded
// email folders arrive named "Display Name <address>"; the organizer
// renames them to the part after the "<" so folders key on the sender
// address alone. Preview never touches the filesystem; Apply performs
// the renames, skipping targets that already exist.
package organizer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/juliaafonsoo/scrape-data/internal/logging"
)

// Rename is one planned folder rename, names relative to the base
// directory.
type Rename struct {
	From string
	To   string
}

// Plan is the outcome of a preview pass.
type Plan struct {
	Renames []Rename
	Kept    []string
}

// Result reports what an apply pass actually did.
type Result struct {
	Renamed int
	Skipped []Rename
	Kept    []string
}

// Organizer renames attachment folders under a base directory.
type Organizer struct {
	logger *slog.Logger
}

// New constructs an organizer. A nil logger silences it.
func New(logger *slog.Logger) *Organizer {
	return &Organizer{logger: logging.NewComponentLogger(logger, "organizer")}
}

// NewFolderName applies the rename rule: everything before the first
// "<", including the "<" itself, is dropped. The boolean reports
// whether the name changes at all.
func NewFolderName(name string) (string, bool) {
	idx := strings.Index(name, "<")
	if idx < 0 {
		return name, false
	}
	renamed := name[idx+1:]
	if renamed == "" || renamed == name {
		return name, false
	}
	return renamed, true
}

// Preview lists the planned renames without touching anything.
func (o *Organizer) Preview(baseDir string) (Plan, error) {
	folders, err := listFolders(baseDir)
	if err != nil {
		return Plan{}, err
	}

	var plan Plan
	for _, name := range folders {
		if renamed, changes := NewFolderName(name); changes {
			plan.Renames = append(plan.Renames, Rename{From: name, To: renamed})
		} else {
			plan.Kept = append(plan.Kept, name)
		}
	}
	return plan, nil
}

// Apply performs the planned renames. A rename whose target already
// exists is skipped rather than overwritten; failed renames are also
// skipped and logged. The plan is re-derived from the directory so
// Apply works standalone.
func (o *Organizer) Apply(baseDir string) (Result, error) {
	plan, err := o.Preview(baseDir)
	if err != nil {
		return Result{}, err
	}

	result := Result{Kept: plan.Kept}
	for _, rename := range plan.Renames {
		from := filepath.Join(baseDir, rename.From)
		to := filepath.Join(baseDir, rename.To)

		if _, err := os.Stat(to); err == nil {
			o.logger.Warn("target folder already exists, skipping",
				logging.String("from", rename.From),
				logging.String("to", rename.To))
			result.Skipped = append(result.Skipped, rename)
			continue
		}
		if err := os.Rename(from, to); err != nil {
			o.logger.Error("folder rename failed",
				logging.String("from", rename.From),
				logging.String("to", rename.To),
				logging.Error(err))
			result.Skipped = append(result.Skipped, rename)
			continue
		}
		o.logger.Info("folder renamed",
			logging.String("from", rename.From),
			logging.String("to", rename.To))
		result.Renamed++
	}
	return result, nil
}

func listFolders(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("read folder directory: %w", err)
	}

	var folders []string
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == ".DS_Store" {
			continue
		}
		folders = append(folders, entry.Name())
	}
	sort.Strings(folders)
	return folders, nil
}
