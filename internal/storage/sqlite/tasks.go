package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mglynn/daytrack/internal/models"
	"github.com/mglynn/daytrack/internal/storage"
)

func (s *Store) AddTask(task models.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO tasks (id, tracker_id, title, created_at)
		VALUES (?, ?, ?, ?)`,
		task.ID, task.TrackerID, task.Title, task.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("task with id %s already exists", task.ID)
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	var t models.Task
	err := s.db.QueryRow(`
		SELECT id, tracker_id, title, created_at
		FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.TrackerID, &t.Title, &t.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

func (s *Store) GetTasksByTracker(trackerID string) ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, tracker_id, title, created_at
		FROM tasks WHERE tracker_id = ? ORDER BY created_at`, trackerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.TrackerID, &t.Title, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// DeleteTaskCascade removes the task and every completion referencing it in
// one atomic transaction.
func (s *Store) DeleteTaskCascade(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cascade delete: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}

	if _, err := tx.Exec(`DELETE FROM completions WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete task completions: %w", err)
	}

	return tx.Commit()
}
