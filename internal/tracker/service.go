// Package tracker is the typed mutation/query facade over storage. The
// storage engine enforces no foreign keys, so the advisory existence checks
// here are the sole integrity gate between callers and the collections.
package tracker

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mglynn/daytrack/internal/models"
	"github.com/mglynn/daytrack/internal/storage"
)

type Service struct {
	store storage.Provider
	now   func() time.Time
}

func NewService(store storage.Provider) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// NewServiceWithClock is used by tests to pin "now".
func NewServiceWithClock(store storage.Provider, now func() time.Time) *Service {
	return &Service{store: store, now: now}
}

func (s *Service) CreateTracker(name string, icon *models.IconSpec) (models.Tracker, error) {
	t := models.Tracker{
		ID:        uuid.New().String(),
		Name:      name,
		Icon:      icon,
		CreatedAt: s.now().UnixMilli(),
	}

	if err := s.store.PutTracker(t); err != nil {
		return models.Tracker{}, err
	}
	return t, nil
}

func (s *Service) GetTracker(id string) (models.Tracker, error) {
	return s.store.GetTracker(id)
}

func (s *Service) ListTrackers() ([]models.Tracker, error) {
	return s.store.GetAllTrackers()
}

// TrackerUpdate carries partial-update fields. A nil Name leaves the name
// unchanged. The icon is tri-state: nil Icon with ClearIcon false leaves it
// unchanged, ClearIcon true removes it, and a non-nil Icon replaces it.
type TrackerUpdate struct {
	Name      *string
	Icon      *models.IconSpec
	ClearIcon bool
}

func (s *Service) UpdateTracker(id string, upd TrackerUpdate) (models.Tracker, error) {
	t, err := s.store.GetTracker(id)
	if err != nil {
		return models.Tracker{}, err
	}

	if upd.Name != nil {
		t.Name = *upd.Name
	}
	switch {
	case upd.ClearIcon:
		t.Icon = nil
	case upd.Icon != nil:
		t.Icon = upd.Icon
	}

	if err := s.store.PutTracker(t); err != nil {
		return models.Tracker{}, err
	}
	return t, nil
}

// DeleteTracker cascades to the tracker's tasks and completions.
func (s *Service) DeleteTracker(id string) error {
	return s.store.DeleteTrackerCascade(id)
}

// NextSelection returns the tracker a caller should select after deleting
// its current one: the first remaining tracker in deterministic order
// (creation time, then id), or ok=false when none remain.
func (s *Service) NextSelection() (models.Tracker, bool, error) {
	trackers, err := s.store.GetAllTrackers()
	if err != nil {
		return models.Tracker{}, false, err
	}
	if len(trackers) == 0 {
		return models.Tracker{}, false, nil
	}

	sort.Slice(trackers, func(i, j int) bool {
		if trackers[i].CreatedAt != trackers[j].CreatedAt {
			return trackers[i].CreatedAt < trackers[j].CreatedAt
		}
		return trackers[i].ID < trackers[j].ID
	})
	return trackers[0], true, nil
}

func (s *Service) CreateTask(trackerID, title string) (models.Task, error) {
	if _, err := s.store.GetTracker(trackerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Task{}, fmt.Errorf("cannot create task: tracker %s does not exist", trackerID)
		}
		return models.Task{}, err
	}

	t := models.Task{
		ID:        uuid.New().String(),
		TrackerID: trackerID,
		Title:     title,
		CreatedAt: s.now().UnixMilli(),
	}

	if err := s.store.AddTask(t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (s *Service) ListTasks(trackerID string) ([]models.Task, error) {
	return s.store.GetTasksByTracker(trackerID)
}

// DeleteTask cascades to the task's completions.
func (s *Service) DeleteTask(id string) error {
	return s.store.DeleteTaskCascade(id)
}

func (s *Service) ListCompletions(trackerID string) ([]models.TaskCompletion, error) {
	return s.store.GetCompletionsByTracker(trackerID)
}

func (s *Service) CompletionsOn(trackerID, date string) ([]models.TaskCompletion, error) {
	return s.store.GetCompletionsByTrackerAndDate(trackerID, date)
}

// ToggleCompletion flips the completed flag for the task on the date. The
// transition to completed keeps any rating already on the record; the
// transition back to incomplete resets the rating to 0 permanently. The
// stored record keeps its id across toggles, so a day never accumulates
// duplicate completions.
func (s *Service) ToggleCompletion(taskID, trackerID, date string) (models.TaskCompletion, error) {
	existing, err := s.store.GetCompletion(taskID, date)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.TaskCompletion{}, err
	}

	c := models.TaskCompletion{
		ID:        existing.ID,
		TaskID:    taskID,
		TrackerID: trackerID,
		Date:      date,
		Completed: !existing.Completed,
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Completed {
		c.Rating = existing.Rating
	}

	if err := s.store.PutCompletion(c); err != nil {
		return models.TaskCompletion{}, err
	}
	return c, nil
}

// SetRating stores a rating without touching the completed flag. Rating a
// task that is not marked complete is allowed on purpose: it simplifies
// retroactive correction, and the UI is the layer that decides whether to
// offer the control.
func (s *Service) SetRating(taskID, trackerID, date string, rating float64) (models.TaskCompletion, error) {
	if !models.ValidRating(rating) {
		return models.TaskCompletion{}, fmt.Errorf("rating %v is not between 0 and 5 in 0.5 steps", rating)
	}

	existing, err := s.store.GetCompletion(taskID, date)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.TaskCompletion{}, err
	}

	c := models.TaskCompletion{
		ID:        existing.ID,
		TaskID:    taskID,
		TrackerID: trackerID,
		Date:      date,
		Completed: existing.Completed,
		Rating:    rating,
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	if err := s.store.PutCompletion(c); err != nil {
		return models.TaskCompletion{}, err
	}
	return c, nil
}
