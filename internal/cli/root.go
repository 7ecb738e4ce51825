package cli

import (
	"fmt"
	"strings"

	"github.com/pbrahmapurd/japa/internal/backup"
	"github.com/pbrahmapurd/japa/internal/clock"
	"github.com/pbrahmapurd/japa/internal/logger"
	"github.com/pbrahmapurd/japa/internal/models"
	"github.com/pbrahmapurd/japa/internal/practice"
	"github.com/pbrahmapurd/japa/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Service *practice.Service
	Clock   clock.Clock
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveCounter turns a user-supplied counter reference into a counter.
// An empty reference means the active counter; otherwise the reference is
// matched against counter IDs first, then names (case-insensitive).
func (c *Context) ResolveCounter(ref string) (models.Counter, error) {
	if ref == "" {
		counter, err := c.Service.ActiveCounter()
		if err != nil {
			return models.Counter{}, fmt.Errorf("no active counter: add one with 'japa counter add' or name one with --counter")
		}
		return counter, nil
	}

	counters, err := c.Service.Counters()
	if err != nil {
		return models.Counter{}, err
	}
	for _, counter := range counters {
		if counter.ID == ref {
			return counter, nil
		}
	}
	for _, counter := range counters {
		if strings.EqualFold(counter.Name, ref) {
			return counter, nil
		}
	}
	return models.Counter{}, fmt.Errorf("counter %q not found", ref)
}

// renderBar draws a fixed-width ASCII progress bar like [#####-----].
func renderBar(value, max, width int) string {
	if max < 1 {
		max = 1
	}
	if value > max {
		value = max
	}
	if value < 0 {
		value = 0
	}
	filled := value * width / max
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// formatGoal renders a tally against its goal, e.g. "2/3 cycles".
func formatGoal(done, goal int) string {
	noun := "cycles"
	if goal == 1 {
		noun = "cycle"
	}
	return fmt.Sprintf("%d/%d %s", done, goal, noun)
}
