package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pbrahmapurd/japa/internal/constants"
)

func writeJSONStore(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "japa.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write store: %v", err)
	}
	return path
}

func TestCreate_MissingStore(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "japa.json"))
	if _, err := m.Create(); err == nil {
		t.Error("expected error for missing store")
	}
}

func TestCreate_RejectsCorruptJSON(t *testing.T) {
	path := writeJSONStore(t, t.TempDir(), "{not json")
	m := NewManager(path)
	if _, err := m.Create(); err == nil {
		t.Error("expected error for corrupt store")
	}
}

func TestCreateAndList(t *testing.T) {
	path := writeJSONStore(t, t.TempDir(), `{"version":1}`)
	m := NewManager(path)

	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(backupPath), constants.BackupFilePrefix) {
		t.Errorf("backup name %q missing prefix", filepath.Base(backupPath))
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}
	if backups[0].Path != backupPath {
		t.Errorf("listed path = %q, want %q", backups[0].Path, backupPath)
	}
	if backups[0].Size == 0 {
		t.Error("backup size should not be zero")
	}
}

func TestCreate_SameSecondGetsCounterSuffix(t *testing.T) {
	path := writeJSONStore(t, t.TempDir(), `{"version":1}`)
	m := NewManager(path)

	first, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := m.Create()
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if first == second {
		t.Errorf("expected distinct backup files, both are %q", first)
	}
}

func TestRotation_EnforcesRetentionLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeJSONStore(t, dir, `{"version":1}`)
	m := NewManager(path)

	// Seed more backups than the retention limit, each with a distinct
	// parseable timestamp.
	if err := os.MkdirAll(m.BackupDir(), 0700); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < constants.MaxBackups+3; i++ {
		stamp := base.Add(time.Duration(i) * time.Minute).Format("20060102-150405")
		name := fmt.Sprintf("%s%s.json", constants.BackupFilePrefix, stamp)
		if err := os.WriteFile(filepath.Join(m.BackupDir(), name), []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to seed backup: %v", err)
		}
	}

	if _, err := m.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("got %d backups after rotation, want %d", len(backups), constants.MaxBackups)
	}

	// The oldest seeded backups are the ones that should be gone.
	oldest := fmt.Sprintf("%s%s.json", constants.BackupFilePrefix, base.Format("20060102-150405"))
	if _, err := os.Stat(filepath.Join(m.BackupDir(), oldest)); !os.IsNotExist(err) {
		t.Error("oldest backup should have been rotated away")
	}
}

func TestRestore_ReplacesStoreAndKeepsSafetyCopy(t *testing.T) {
	dir := t.TempDir()
	path := writeJSONStore(t, dir, `{"version":1,"state":"old"}`)
	m := NewManager(path)

	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The store changes after the backup was taken.
	if err := os.WriteFile(path, []byte(`{"version":1,"state":"new"}`), 0600); err != nil {
		t.Fatalf("failed to rewrite store: %v", err)
	}

	if err := m.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read restored store: %v", err)
	}
	if !strings.Contains(string(data), `"old"`) {
		t.Errorf("store not restored from backup: %s", data)
	}

	// Restore keeps a safety copy of the pre-restore store.
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected safety backup alongside original, got %d", len(backups))
	}
}

func TestRestore_RejectsInvalidBackup(t *testing.T) {
	dir := t.TempDir()
	path := writeJSONStore(t, dir, `{"version":1}`)
	m := NewManager(path)

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{broken"), 0600); err != nil {
		t.Fatalf("failed to write bad backup: %v", err)
	}

	if err := m.Restore(bad); err == nil {
		t.Error("expected error restoring corrupt backup")
	}
}
