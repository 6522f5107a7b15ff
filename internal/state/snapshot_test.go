package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskflow/internal/models"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	src := Seed()
	src.CurrentUser = src.Users[0].Public()
	src.SessionToken = "tok"
	src.Settings.DarkMode = true

	data, err := src.MarshalSnapshot()
	require.NoError(t, err)

	dst := Empty()
	skipped, err := dst.ApplySnapshot(data)
	require.NoError(t, err)
	assert.Empty(t, skipped)

	assert.Equal(t, src.Users, dst.Users)
	assert.Equal(t, src.Tasks, dst.Tasks)
	assert.Equal(t, src.Settings, dst.Settings)
	assert.Equal(t, src.NextUserID, dst.NextUserID)
	assert.Equal(t, src.NextTaskID, dst.NextTaskID)
	assert.Equal(t, src.SessionToken, dst.SessionToken)
	require.NotNil(t, dst.CurrentUser)
	assert.Equal(t, src.CurrentUser.ID, dst.CurrentUser.ID)
	assert.Empty(t, dst.CurrentUser.PasswordHash, "session copy carries no credential")
}

func TestApplySnapshot_MissingFieldsKeepDefaults(t *testing.T) {
	st := Empty()
	st.NextUserID = 7

	skipped, err := st.ApplySnapshot([]byte(`{"nextTaskId": 42}`))
	require.NoError(t, err)
	assert.Empty(t, skipped)

	assert.Equal(t, int64(42), st.NextTaskID)
	assert.Equal(t, int64(7), st.NextUserID, "absent field must keep the in-memory value")
	assert.True(t, st.Settings.TaskReminders, "absent settings keep defaults")
}

func TestApplySnapshot_UnknownKeysIgnored(t *testing.T) {
	st := Empty()
	skipped, err := st.ApplySnapshot([]byte(`{"nextUserId": 5, "futureField": {"x": 1}}`))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, int64(5), st.NextUserID)
}

func TestApplySnapshot_MalformedFieldSkipped(t *testing.T) {
	st := Empty()
	skipped, err := st.ApplySnapshot([]byte(`{"nextUserId": "oops", "nextTaskId": 9}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"nextUserId"}, skipped)
	assert.Equal(t, int64(1), st.NextUserID)
	assert.Equal(t, int64(9), st.NextTaskID)
}

func TestApplySnapshot_NotAnObject(t *testing.T) {
	st := Empty()
	_, err := st.ApplySnapshot([]byte(`[1,2,3]`))
	require.Error(t, err)
	assert.Equal(t, int64(1), st.NextUserID, "state untouched on unreadable snapshot")
}

func TestSeed_MatchesInitialCounters(t *testing.T) {
	st := Seed()

	assert.Equal(t, int64(2), st.NextUserID)
	assert.Equal(t, int64(4), st.NextTaskID)
	require.Len(t, st.Users, 1)
	require.Len(t, st.Tasks, 3)
	assert.Equal(t, "demouser", st.Users[0].Username)
	assert.NotContains(t, string(mustMarshal(t, st)), "password123", "seed credential must be stored hashed")
}

func mustMarshal(t *testing.T, st *AppState) []byte {
	t.Helper()
	data, err := st.MarshalSnapshot()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestUserByID_And_TaskByID(t *testing.T) {
	st := Seed()

	u := st.UserByID(1)
	require.NotNil(t, u)
	assert.Equal(t, "Demo User", u.FullName)
	assert.Nil(t, st.UserByID(99))

	task := st.TaskByID(2)
	require.NotNil(t, task)
	assert.Equal(t, "Team meeting", task.Title)
	assert.Nil(t, st.TaskByID(99))

	// returned pointers alias state entries
	task.Status = models.StatusCompleted
	assert.Equal(t, models.StatusCompleted, st.Tasks[1].Status)
}
