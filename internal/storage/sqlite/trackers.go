package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mglynn/daytrack/internal/models"
	"github.com/mglynn/daytrack/internal/storage"
)

func scanTracker(row interface{ Scan(...any) error }) (models.Tracker, error) {
	var t models.Tracker
	var icon sql.NullString

	if err := row.Scan(&t.ID, &t.Name, &icon, &t.CreatedAt); err != nil {
		return models.Tracker{}, err
	}

	if icon.Valid && icon.String != "" {
		var spec models.IconSpec
		if err := json.Unmarshal([]byte(icon.String), &spec); err != nil {
			return models.Tracker{}, fmt.Errorf("failed to unmarshal tracker icon: %w", err)
		}
		t.Icon = &spec
	}

	return t, nil
}

func (s *Store) PutTracker(tracker models.Tracker) error {
	if err := tracker.Validate(); err != nil {
		return err
	}

	var icon sql.NullString
	if tracker.Icon != nil {
		data, err := json.Marshal(tracker.Icon)
		if err != nil {
			return fmt.Errorf("failed to marshal tracker icon: %w", err)
		}
		icon = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO trackers (id, name, icon, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon`,
		tracker.ID, tracker.Name, icon, tracker.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to put tracker: %w", err)
	}

	return nil
}

func (s *Store) GetTracker(id string) (models.Tracker, error) {
	row := s.db.QueryRow(`
		SELECT id, name, icon, created_at
		FROM trackers WHERE id = ?`, id)

	t, err := scanTracker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tracker{}, fmt.Errorf("tracker %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Tracker{}, fmt.Errorf("failed to get tracker: %w", err)
	}

	return t, nil
}

func (s *Store) GetAllTrackers() ([]models.Tracker, error) {
	rows, err := s.db.Query(`
		SELECT id, name, icon, created_at
		FROM trackers ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trackers: %w", err)
	}
	defer rows.Close()

	var trackers []models.Tracker
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracker: %w", err)
		}
		trackers = append(trackers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trackers: %w", err)
	}

	return trackers, nil
}

// DeleteTrackerCascade removes the tracker together with every task and
// completion that references it. The whole cascade runs in one transaction
// so a crash mid-delete can never strand a task without its tracker or a
// completion without its task.
func (s *Store) DeleteTrackerCascade(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cascade delete: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM trackers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tracker: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("tracker %s: %w", id, storage.ErrNotFound)
	}

	if _, err := tx.Exec(`DELETE FROM tasks WHERE tracker_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete tracker tasks: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM completions WHERE tracker_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete tracker completions: %w", err)
	}

	return tx.Commit()
}
