package publish

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor periodically removes published documents older than Retention.
type Janitor struct {
	Dir       string
	Retention time.Duration
	Schedule  string

	logger *slog.Logger
	sched  *cron.Cron
	now    func() time.Time
}

// NewJanitor creates a Janitor for dir. Call Start to begin pruning.
func NewJanitor(dir string, retention time.Duration, schedule string, logger *slog.Logger) *Janitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Janitor{
		Dir:       dir,
		Retention: retention,
		Schedule:  schedule,
		logger:    logger,
		now:       time.Now,
	}
}

// Start schedules Prune. A zero retention disables pruning.
func (j *Janitor) Start() error {
	if j.Retention <= 0 {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(j.Schedule, func() {
		removed, err := j.Prune()
		if err != nil {
			j.logger.Warn("prune published documents", "dir", j.Dir, "error", err)
			return
		}
		if removed > 0 {
			j.logger.Info("pruned published documents", "dir", j.Dir, "removed", removed)
		}
	}); err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", j.Schedule, err)
	}
	c.Start()
	j.sched = c
	return nil
}

// Stop halts the schedule and waits for a running prune to finish.
func (j *Janitor) Stop() {
	if j.sched != nil {
		<-j.sched.Stop().Done()
		j.sched = nil
	}
}

// Prune deletes published .html files (and abandoned temp files) last
// modified before now minus Retention. A missing directory is not an error.
func (j *Janitor) Prune() (int, error) {
	entries, err := os.ReadDir(j.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := j.now().Add(-j.Retention)
	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !(strings.HasSuffix(name, ".html") || strings.HasPrefix(name, ".publish-")) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(j.Dir, name)); err != nil && !os.IsNotExist(err) {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}
