// Package tasks implements per-user task CRUD, queries, aggregate
// statistics, and export. All operations are scoped by an explicit owning
// user id, never inferred from the session.
package tasks

import (
	"context"
	"encoding/json"
	"math"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/state"
)

// ExportFileName is the suggested file name for an export artifact.
const ExportFileName = "tasks_export.json"

type Service struct {
	state *state.Manager
	log   logging.Logger
}

func NewService(m *state.Manager, log logging.Logger) *Service {
	return &Service{state: m, log: log.With("component", "tasks")}
}

// UpdateParams carries the optional fields of an update; nil fields leave
// the stored value untouched.
type UpdateParams struct {
	Title       *string
	Description *string
	DueDate     *string
	DueTime     *string
	Priority    *models.Priority
	Status      *models.Status
}

// Stats are aggregate counters over one user's tasks. CompletionRate is a
// rounded percentage, zero when the user has no tasks.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completionRate"`
}

// Create appends a new task for userID. Description defaults to empty,
// priority to medium, status to active. The owning user must exist:
// orphaned tasks are never created.
func (s *Service) Create(ctx context.Context, userID int64, title, description, dueDate, dueTime string, priority models.Priority) (*models.Task, error) {
	if priority == "" {
		priority = models.PriorityMedium
	}

	var created *models.Task
	err := s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		if st.UserByID(userID) == nil {
			return false, common.ErrNotFound
		}

		now := s.state.Now()
		task := models.Task{
			ID:          st.NextTaskID,
			UserID:      userID,
			Title:       title,
			Description: description,
			DueDate:     dueDate,
			DueTime:     dueTime,
			Priority:    priority,
			Status:      models.StatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		st.NextTaskID++
		st.Tasks = append(st.Tasks, task)

		c := task
		created = &c
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update merges the supplied fields over the stored task and refreshes
// UpdatedAt.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*models.Task, error) {
	var updated *models.Task
	err := s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		task := st.TaskByID(id)
		if task == nil {
			return false, common.ErrNotFound
		}

		if params.Title != nil {
			task.Title = *params.Title
		}
		if params.Description != nil {
			task.Description = *params.Description
		}
		if params.DueDate != nil {
			task.DueDate = *params.DueDate
		}
		if params.DueTime != nil {
			task.DueTime = *params.DueTime
		}
		if params.Priority != nil {
			task.Priority = *params.Priority
		}
		if params.Status != nil {
			task.Status = *params.Status
		}
		task.UpdatedAt = s.state.Now()

		c := *task
		updated = &c
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the task with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		for i := range st.Tasks {
			if st.Tasks[i].ID == id {
				st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
				return true, nil
			}
		}
		return false, common.ErrNotFound
	})
}

// ToggleStatus flips a task between active and completed and refreshes
// UpdatedAt.
func (s *Service) ToggleStatus(ctx context.Context, id int64) (*models.Task, error) {
	var updated *models.Task
	err := s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		task := st.TaskByID(id)
		if task == nil {
			return false, common.ErrNotFound
		}

		if task.Status == models.StatusActive {
			task.Status = models.StatusCompleted
		} else {
			task.Status = models.StatusActive
		}
		task.UpdatedAt = s.state.Now()

		c := *task
		updated = &c
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetByID returns a copy of the task with the given id.
func (s *Service) GetByID(id int64) (*models.Task, error) {
	var found *models.Task
	s.state.View(func(st *state.AppState) {
		if task := st.TaskByID(id); task != nil {
			c := *task
			found = &c
		}
	})
	if found == nil {
		return nil, common.ErrNotFound
	}
	return found, nil
}

// ListByUser returns copies of the user's tasks in storage order. Sorting
// is a view-layer concern.
func (s *Service) ListByUser(userID int64) []models.Task {
	var result []models.Task
	s.state.View(func(st *state.AppState) {
		for _, task := range st.Tasks {
			if task.UserID == userID {
				result = append(result, task)
			}
		}
	})
	return result
}

// ListByUserAndDate returns the user's tasks whose due date equals date
// ("YYYY-MM-DD"), in storage order.
func (s *Service) ListByUserAndDate(userID int64, date string) []models.Task {
	var result []models.Task
	s.state.View(func(st *state.AppState) {
		for _, task := range st.Tasks {
			if task.UserID == userID && task.DueDate == date {
				result = append(result, task)
			}
		}
	})
	return result
}

// Stats computes the aggregate counters for one user.
func (s *Service) Stats(userID int64) Stats {
	var stats Stats
	s.state.View(func(st *state.AppState) {
		for _, task := range st.Tasks {
			if task.UserID != userID {
				continue
			}
			stats.Total++
			if task.Status == models.StatusCompleted {
				stats.Completed++
			}
		}
	})
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}

// ClearCompleted removes all of the user's completed tasks and returns how
// many were removed.
func (s *Service) ClearCompleted(ctx context.Context, userID int64) (int, error) {
	removed := 0
	err := s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		kept := st.Tasks[:0]
		for _, task := range st.Tasks {
			if task.UserID == userID && task.Status == models.StatusCompleted {
				removed++
				continue
			}
			kept = append(kept, task)
		}
		st.Tasks = kept
		return removed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Export serializes the user's tasks as a pretty-printed JSON array. The
// state is not mutated; writing the artifact to a file is the caller's
// concern.
func (s *Service) Export(userID int64) ([]byte, error) {
	list := s.ListByUser(userID)
	if list == nil {
		list = []models.Task{}
	}
	return json.MarshalIndent(list, "", "  ")
}
