// Package settings exposes the process-wide preference toggles.
package settings

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/state"
)

type Service struct {
	state *state.Manager
}

func NewService(m *state.Manager) *Service {
	return &Service{state: m}
}

// Get returns the current settings.
func (s *Service) Get() models.Settings {
	var settings models.Settings
	s.state.View(func(st *state.AppState) {
		settings = st.Settings
	})
	return settings
}

// Update overwrites the provided flags; nil fields are left untouched.
func (s *Service) Update(ctx context.Context, darkMode, taskReminders *bool) (models.Settings, error) {
	var settings models.Settings
	err := s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		changed := false
		if darkMode != nil && st.Settings.DarkMode != *darkMode {
			st.Settings.DarkMode = *darkMode
			changed = true
		}
		if taskReminders != nil && st.Settings.TaskReminders != *taskReminders {
			st.Settings.TaskReminders = *taskReminders
			changed = true
		}
		settings = st.Settings
		return changed, nil
	})
	return settings, err
}
