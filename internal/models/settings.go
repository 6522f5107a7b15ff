package models

// Settings are process-wide preferences, not scoped to a user.
type Settings struct {
	DarkMode      bool `json:"darkMode"`
	TaskReminders bool `json:"taskReminders"`
}
