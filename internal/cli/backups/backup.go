package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mglynn/daytrack/internal/backup"
	"github.com/mglynn/daytrack/internal/cli"
	"github.com/mglynn/daytrack/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Printf("No backups yet. They will be written to %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Backups in %s (%d of %d kept):\n\n", mgr.GetBackupDir(), len(backups), constants.MaxBackups)
	for _, b := range backups {
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"),
			filepath.Base(b.Path),
			float64(b.Size)/1024.0)
	}

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
}

// resolveBackupPath accepts an absolute path, a path relative to the current
// directory, or a bare filename looked up in the backup directory.
func resolveBackupPath(mgr *backup.Manager, name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}

	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}

	inDir := filepath.Join(mgr.GetBackupDir(), name)
	if _, err := os.Stat(inDir); err == nil {
		return inDir, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.GetBackupDir())
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backupPath, err := resolveBackupPath(mgr, c.BackupFile)
	if err != nil {
		return err
	}

	fmt.Println("Restoring replaces the current database. Stop any running daytrack")
	fmt.Println("processes first; a safety backup is taken before the restore.")
	confirmed, err := cli.Confirm(fmt.Sprintf("Restore from %s?", filepath.Base(backupPath)), "Restore")
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Restore cancelled.")
		return nil
	}

	// The restore replaces the database file out from under an open handle.
	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Database restored. Restart any daytrack processes you stopped.")
	return nil
}
