package state

import (
	"encoding/json"

	"github.com/dmitrijs2005/taskflow/internal/models"
)

// snapshotDTO is the serialized form of AppState. Field names are the
// stable on-disk contract; unknown extra keys in a stored snapshot are
// ignored on load.
type snapshotDTO struct {
	Users        []models.User   `json:"users"`
	Tasks        []models.Task   `json:"tasks"`
	CurrentUser  *models.User    `json:"currentUser"`
	Settings     models.Settings `json:"settings"`
	NextUserID   int64           `json:"nextUserId"`
	NextTaskID   int64           `json:"nextTaskId"`
	SessionToken string          `json:"sessionToken,omitempty"`
}

// MarshalSnapshot serializes the complete state as one JSON document.
func (s *AppState) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(snapshotDTO{
		Users:        s.Users,
		Tasks:        s.Tasks,
		CurrentUser:  s.CurrentUser,
		Settings:     s.Settings,
		NextUserID:   s.NextUserID,
		NextTaskID:   s.NextTaskID,
		SessionToken: s.SessionToken,
	})
}

// ApplySnapshot merges a stored snapshot into s field by field: every
// top-level field present in the document overwrites the corresponding
// in-memory field, fields that are absent or fail to decode are skipped and
// reported in the returned slice. A document that is not a JSON object at
// the top level yields an error and leaves s untouched.
func (s *AppState) ApplySnapshot(data []byte) ([]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var skipped []string

	merge := func(key string, target any) {
		msg, ok := raw[key]
		if !ok {
			return
		}
		if err := json.Unmarshal(msg, target); err != nil {
			skipped = append(skipped, key)
		}
	}

	merge("users", &s.Users)
	merge("tasks", &s.Tasks)
	merge("currentUser", &s.CurrentUser)
	merge("settings", &s.Settings)
	merge("nextUserId", &s.NextUserID)
	merge("nextTaskId", &s.NextTaskID)
	merge("sessionToken", &s.SessionToken)

	return skipped, nil
}
