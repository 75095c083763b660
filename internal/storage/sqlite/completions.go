package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mglynn/daytrack/internal/models"
	"github.com/mglynn/daytrack/internal/storage"
)

func (s *Store) PutCompletion(completion models.TaskCompletion) error {
	if err := completion.Validate(); err != nil {
		return err
	}

	// Conflict on (task_id, date) rather than id: a concurrent retry that
	// generated a fresh id still lands on the existing record instead of
	// duplicating the day.
	_, err := s.db.Exec(`
		INSERT INTO completions (id, task_id, tracker_id, date, completed, rating)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(task_id, date) DO UPDATE SET
			completed = excluded.completed,
			rating = excluded.rating`,
		completion.ID, completion.TaskID, completion.TrackerID,
		completion.Date, completion.Completed, completion.Rating)
	if err != nil {
		return fmt.Errorf("failed to put completion: %w", err)
	}

	return nil
}

func (s *Store) GetCompletion(taskID, date string) (models.TaskCompletion, error) {
	var c models.TaskCompletion
	err := s.db.QueryRow(`
		SELECT id, task_id, tracker_id, date, completed, rating
		FROM completions WHERE task_id = ? AND date = ?`, taskID, date).
		Scan(&c.ID, &c.TaskID, &c.TrackerID, &c.Date, &c.Completed, &c.Rating)

	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskCompletion{}, fmt.Errorf("completion for task %s on %s: %w", taskID, date, storage.ErrNotFound)
	}
	if err != nil {
		return models.TaskCompletion{}, fmt.Errorf("failed to get completion: %w", err)
	}

	return c, nil
}

func (s *Store) queryCompletions(query string, args ...any) ([]models.TaskCompletion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	var completions []models.TaskCompletion
	for rows.Next() {
		var c models.TaskCompletion
		if err := rows.Scan(&c.ID, &c.TaskID, &c.TrackerID, &c.Date, &c.Completed, &c.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		completions = append(completions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completions: %w", err)
	}

	return completions, nil
}

func (s *Store) GetCompletionsByTracker(trackerID string) ([]models.TaskCompletion, error) {
	return s.queryCompletions(`
		SELECT id, task_id, tracker_id, date, completed, rating
		FROM completions WHERE tracker_id = ?`, trackerID)
}

func (s *Store) GetCompletionsByTrackerAndDate(trackerID, date string) ([]models.TaskCompletion, error) {
	return s.queryCompletions(`
		SELECT id, task_id, tracker_id, date, completed, rating
		FROM completions WHERE tracker_id = ? AND date = ?`, trackerID, date)
}

func (s *Store) GetCompletionsByDate(date string) ([]models.TaskCompletion, error) {
	return s.queryCompletions(`
		SELECT id, task_id, tracker_id, date, completed, rating
		FROM completions WHERE date = ?`, date)
}
