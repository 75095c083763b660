package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mglynn/daytrack/internal/constants"
	"github.com/mglynn/daytrack/internal/models"
	"github.com/mglynn/daytrack/internal/storage/sqlite"
)

// setupTestDB initializes a real database file and returns its path.
func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}
	if err := store.PutTracker(models.Tracker{ID: "tr1", Name: "Fitness", CreatedAt: 1000}); err != nil {
		t.Fatalf("PutTracker() returned unexpected error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close test database: %v", err)
	}

	return dbPath
}

func TestCreateBackup(t *testing.T) {
	t.Run("creates a verifiable backup file", func(t *testing.T) {
		dbPath := setupTestDB(t)
		mgr := NewManager(dbPath)

		backupPath, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup() returned unexpected error: %v", err)
		}

		info, err := os.Stat(backupPath)
		if err != nil {
			t.Fatalf("backup file missing: %v", err)
		}
		if info.Size() == 0 {
			t.Error("backup file is empty")
		}
		if err := mgr.verifyBackup(backupPath); err != nil {
			t.Errorf("verifyBackup() returned unexpected error: %v", err)
		}

		name := filepath.Base(backupPath)
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			t.Errorf("backup filename %q does not match naming scheme", name)
		}
	})

	t.Run("missing database is an error", func(t *testing.T) {
		mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
		if _, err := mgr.CreateBackup(); err == nil {
			t.Error("CreateBackup() expected error for missing database, got nil")
		}
	})

	t.Run("same-minute backups get distinct names", func(t *testing.T) {
		dbPath := setupTestDB(t)
		mgr := NewManager(dbPath)

		first, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup() returned unexpected error: %v", err)
		}
		second, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup() second call returned unexpected error: %v", err)
		}
		if first == second {
			t.Errorf("two backups share the path %s", first)
		}
	})
}

func TestListBackups(t *testing.T) {
	t.Run("no backup dir yields empty list", func(t *testing.T) {
		mgr := NewManager(filepath.Join(t.TempDir(), "test.db"))
		backups, err := mgr.ListBackups()
		if err != nil {
			t.Fatalf("ListBackups() returned unexpected error: %v", err)
		}
		if len(backups) != 0 {
			t.Errorf("ListBackups() returned %d entries, want 0", len(backups))
		}
	})

	t.Run("ignores foreign files", func(t *testing.T) {
		dbPath := setupTestDB(t)
		mgr := NewManager(dbPath)
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup() returned unexpected error: %v", err)
		}

		stray := filepath.Join(mgr.GetBackupDir(), "notes.txt")
		if err := os.WriteFile(stray, []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write stray file: %v", err)
		}

		backups, err := mgr.ListBackups()
		if err != nil {
			t.Fatalf("ListBackups() returned unexpected error: %v", err)
		}
		if len(backups) != 1 {
			t.Errorf("ListBackups() returned %d entries, want 1", len(backups))
		}
	})
}

func TestStripCounterSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20240610-1504", "20240610-1504"},
		{"20240610-150405", "20240610-150405"},
		{"20240610-150405-1", "20240610-150405"},
		{"20240610-150405-12", "20240610-150405"},
		{"20240610-150405-abc", "20240610-150405-abc"},
	}

	for _, tt := range tests {
		if got := stripCounterSuffix(tt.in); got != tt.want {
			t.Errorf("stripCounterSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRestoreBackup(t *testing.T) {
	t.Run("round trip restores earlier contents", func(t *testing.T) {
		dbPath := setupTestDB(t)
		mgr := NewManager(dbPath)

		backupPath, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup() returned unexpected error: %v", err)
		}

		// Mutate the live database after the backup.
		store := sqlite.NewStore(dbPath)
		if err := store.Load(); err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if err := store.PutTracker(models.Tracker{ID: "tr2", Name: "Extra", CreatedAt: 2000}); err != nil {
			t.Fatalf("PutTracker() returned unexpected error: %v", err)
		}
		store.Close()

		if err := mgr.RestoreBackup(backupPath); err != nil {
			t.Fatalf("RestoreBackup() returned unexpected error: %v", err)
		}

		restored := sqlite.NewStore(dbPath)
		if err := restored.Load(); err != nil {
			t.Fatalf("Load() after restore returned unexpected error: %v", err)
		}
		defer restored.Close()

		trackers, err := restored.GetAllTrackers()
		if err != nil {
			t.Fatalf("GetAllTrackers() returned unexpected error: %v", err)
		}
		if len(trackers) != 1 || trackers[0].ID != "tr1" {
			t.Errorf("restored trackers = %v, want only tr1", trackers)
		}
	})

	t.Run("rejects corrupt backup", func(t *testing.T) {
		dbPath := setupTestDB(t)
		mgr := NewManager(dbPath)

		bogus := filepath.Join(t.TempDir(), "bogus.db")
		if err := os.WriteFile(bogus, []byte("this is not sqlite"), 0600); err != nil {
			t.Fatalf("failed to write bogus backup: %v", err)
		}

		if err := mgr.RestoreBackup(bogus); err == nil {
			t.Error("RestoreBackup(corrupt) expected error, got nil")
		}
	})

	t.Run("missing backup file is an error", func(t *testing.T) {
		dbPath := setupTestDB(t)
		mgr := NewManager(dbPath)
		if err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
			t.Error("RestoreBackup(missing) expected error, got nil")
		}
	})
}
