// Package state owns the single mutable application state and its snapshot
// lifecycle. All mutation goes through Manager, which serializes turns,
// persists the snapshot best-effort after every change, and notifies
// subscribers.
package state

import (
	"time"

	"github.com/dmitrijs2005/taskflow/internal/cryptox"
	"github.com/dmitrijs2005/taskflow/internal/models"
)

// AppState is the complete in-memory application state. It is shared by the
// identity and task stores and may only be mutated through Manager.Update.
type AppState struct {
	Users        []models.User
	Tasks        []models.Task
	CurrentUser  *models.User
	Settings     models.Settings
	NextUserID   int64
	NextTaskID   int64
	SessionToken string
}

// Empty returns a blank state with counters seeded at 1 and default settings.
func Empty() *AppState {
	return &AppState{
		Users:      []models.User{},
		Tasks:      []models.Task{},
		Settings:   models.Settings{DarkMode: false, TaskReminders: true},
		NextUserID: 1,
		NextTaskID: 1,
	}
}

// Seed returns the compiled-in default state for fresh installs: a demo
// account with a few sample tasks. A persisted snapshot overrides it
// field by field on load.
func Seed() *AppState {
	salt := cryptox.NewSalt()

	st := Empty()
	st.Users = []models.User{
		{
			ID:           1,
			FullName:     "Demo User",
			Email:        "demo@example.com",
			Username:     "demouser",
			PasswordHash: cryptox.HashPassword([]byte("password123"), salt),
			Salt:         salt,
			CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	st.Tasks = []models.Task{
		{
			ID:          1,
			UserID:      1,
			Title:       "Complete project proposal",
			Description: "Finish the Q4 project proposal document",
			DueDate:     "2025-11-05",
			Priority:    models.PriorityHigh,
			Status:      models.StatusActive,
			CreatedAt:   time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			UserID:      1,
			Title:       "Team meeting",
			Description: "Weekly sync with development team",
			DueDate:     "2025-10-30",
			Priority:    models.PriorityMedium,
			Status:      models.StatusActive,
			CreatedAt:   time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          3,
			UserID:      1,
			Title:       "Code review",
			Description: "Review pull requests from team members",
			DueDate:     "2025-10-29",
			Priority:    models.PriorityHigh,
			Status:      models.StatusCompleted,
			CreatedAt:   time.Date(2025, 10, 25, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC),
		},
	}
	st.NextUserID = 2
	st.NextTaskID = 4
	return st
}

// UserByID returns a pointer into Users for the given id, or nil.
func (s *AppState) UserByID(id int64) *models.User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// TaskByID returns a pointer into Tasks for the given id, or nil.
func (s *AppState) TaskByID(id int64) *models.Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}
