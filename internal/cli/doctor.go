package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/pbrahmapurd/japa/internal/backup"
	"github.com/pbrahmapurd/japa/internal/storage"
	"github.com/pbrahmapurd/japa/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	// Check 2: data validation (only if the store is reachable)
	if storeReachable {
		if err := checkValidation(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (store not reachable)\n")
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 4: clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 5: concurrent instances (warning only)
	if err := checkConcurrentInstances(); err != nil {
		fmt.Printf("⚠ Single instance: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkValidation(ctx *Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	counters, err := ctx.Store.GetAllCounters()
	if err != nil {
		return fmt.Errorf("failed to get counters: %w", err)
	}

	counterIDs := make(map[string]bool)
	for _, counter := range counters {
		if counterIDs[counter.ID] {
			return fmt.Errorf("duplicate counter ID found: %s", counter.ID)
		}
		counterIDs[counter.ID] = true

		if _, result := validation.SanitizeCounter(counter); result.Dirty() {
			return fmt.Errorf("counter %q has invalid settings: %s", counter.Name, result.Issues[0].Description)
		}

		progress, err := ctx.Store.GetProgress(counter.ID)
		if err != nil {
			continue // no live progress yet is fine
		}
		if _, result := validation.SanitizeProgress(progress, counter.CycleLength, ctx.Clock.Today()); result.Dirty() {
			return fmt.Errorf("counter %q has corrupt progress: %s", counter.Name, result.Issues[0].Description)
		}
	}

	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'japa backup create'")
	}

	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Store.GetSettings()
	if err == nil && settings.Timezone != "" && settings.Timezone != "Local" {
		if _, err := time.LoadLocation(settings.Timezone); err != nil {
			return fmt.Errorf("configured timezone %q is not loadable: %w", settings.Timezone, err)
		}
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}

	return nil
}

// checkConcurrentInstances warns when another japa process is running, since
// two instances can race on the same store file.
func checkConcurrentInstances() error {
	self := os.Getpid()
	name := filepath.Base(os.Args[0])

	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	for _, proc := range processes {
		if proc.Pid() == self {
			continue
		}
		if strings.EqualFold(strings.TrimSuffix(proc.Executable(), ".exe"), strings.TrimSuffix(name, ".exe")) {
			return fmt.Errorf("another %s process is running (pid %d); concurrent writes to the same store can conflict", name, proc.Pid())
		}
	}

	return nil
}
