package cli

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/config"
	"github.com/dmitrijs2005/taskflow/internal/identity"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/reconcile"
	"github.com/dmitrijs2005/taskflow/internal/settings"
	"github.com/dmitrijs2005/taskflow/internal/state"
	"github.com/dmitrijs2005/taskflow/internal/storage"
	"github.com/dmitrijs2005/taskflow/internal/tasks"
)

// newTestApp wires a full App over an in-memory store with the seed state.
func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	log := logging.NewDefault()

	manager := state.NewManager(storage.NewMemStore(), log)

	var out bytes.Buffer
	a := &App{
		cfg:        cfg,
		identity:   identity.NewService(manager, cfg, log),
		tasks:      tasks.NewService(manager, log),
		settings:   settings.NewService(manager),
		reconciler: reconcile.New(manager, log),
		log:        log,
		out:        &out,
	}
	return a, &out
}

func (a *App) setInput(s string) {
	a.reader = bufio.NewReader(strings.NewReader(s))
}

func stubPassword(t *testing.T, answers ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	i := 0
	readPassword = func(int) ([]byte, error) {
		if i >= len(answers) {
			t.Fatalf("unexpected password prompt %d", i)
		}
		pw := []byte(answers[i])
		i++
		return pw, nil
	}
}

func loginDemo(t *testing.T, a *App) {
	t.Helper()
	stubPassword(t, "password123")
	a.setInput("demouser\n")
	require.NoError(t, a.Login(context.Background()))
}

func TestApp_RequiresLogin(t *testing.T) {
	a, out := newTestApp(t)
	a.setInput("")

	err := a.Add(context.Background())
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.Contains(t, out.String(), "Please log in first")
}

func TestApp_AddListDone(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	loginDemo(t, a)

	a.setInput(strings.Join([]string{
		"Water the plants",
		"balcony only",
		"2026-09-01",
		"09:30",
		"high",
	}, "\n") + "\n")
	require.NoError(t, a.Add(ctx))
	assert.Contains(t, out.String(), "Created task 4")

	out.Reset()
	require.NoError(t, a.List(ctx, "active"))
	assert.Contains(t, out.String(), "Water the plants")
	assert.Contains(t, out.String(), "Sep 1, 2026")
	assert.Contains(t, out.String(), "9:30 AM")

	out.Reset()
	require.NoError(t, a.Done(ctx, "4"))
	assert.Contains(t, out.String(), "[x] 4.")

	out.Reset()
	require.NoError(t, a.List(ctx, "active"))
	assert.NotContains(t, out.String(), "Water the plants")
}

func TestApp_AddRejectsBadDate(t *testing.T) {
	a, out := newTestApp(t)
	loginDemo(t, a)

	a.setInput("Title\n\nnot-a-date\n")
	require.NoError(t, a.Add(context.Background()))
	assert.Contains(t, out.String(), "Invalid date")

	before := len(a.tasks.ListByUser(1))
	assert.Equal(t, 3, before)
}

func TestApp_EditKeepsBlankFields(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	loginDemo(t, a)

	// New title, everything else kept.
	a.setInput("Renamed\n\n\n\n\n")
	require.NoError(t, a.Edit(ctx, "1"))
	assert.Contains(t, out.String(), "Renamed")

	task, err := a.tasks.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", task.Title)
	assert.NotEmpty(t, task.Description)
}

func TestApp_DeleteRejectsForeignTask(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	// Second account owns no tasks; the seed tasks belong to user 1.
	stubPassword(t, "secondpass1", "secondpass1")
	a.setInput("Second User\nsecond@example.com\nseconduser\n")
	require.NoError(t, a.Signup(ctx))

	out.Reset()
	err := a.Delete(ctx, "1")
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, out.String(), "Not found")

	_, err = a.tasks.GetByID(1)
	assert.NoError(t, err)
}

func TestApp_SignupDuplicateEmail(t *testing.T) {
	a, out := newTestApp(t)

	stubPassword(t, "validpass1", "validpass1")
	a.setInput("Someone Else\ndemo@example.com\nsomeone\n")
	err := a.Signup(context.Background())
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Contains(t, out.String(), "Email already exists")
}

func TestApp_StatsAndClear(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	loginDemo(t, a)

	// The seed already holds one completed task; finish another.
	require.NoError(t, a.Done(ctx, "1"))

	out.Reset()
	require.NoError(t, a.Stats(ctx))
	assert.Contains(t, out.String(), "Total: 3")
	assert.Contains(t, out.String(), "Completed: 2")
	assert.Contains(t, out.String(), "Pending: 1")

	out.Reset()
	require.NoError(t, a.ClearCompleted(ctx))
	assert.Contains(t, out.String(), "Removed 2 completed task(s)")
	assert.Len(t, a.tasks.ListByUser(1), 1)
}

func TestApp_Settings(t *testing.T) {
	a, out := newTestApp(t)
	loginDemo(t, a)

	a.setInput("on\noff\n")
	require.NoError(t, a.Settings(context.Background()))
	assert.Contains(t, out.String(), "Dark mode: on, task reminders: off")
}

func TestApp_Export(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	loginDemo(t, a)
	t.Chdir(t.TempDir())

	require.NoError(t, a.Export(ctx))
	assert.Contains(t, out.String(), tasks.ExportFileName)

	data, err := os.ReadFile(tasks.ExportFileName)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Complete project proposal")
}

func TestApp_ProfileShowsInitialsAndUpdates(t *testing.T) {
	a, out := newTestApp(t)
	loginDemo(t, a)
	out.Reset()

	// Keep email and username, change the display name.
	a.setInput("Demo Renamed\n\n\n")
	require.NoError(t, a.Profile(context.Background()))
	assert.Contains(t, out.String(), "[DU] Demo User")
	assert.Contains(t, out.String(), "Profile updated for demouser")

	u := a.identity.CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "Demo Renamed", u.FullName)
}

func TestApp_DeleteAccountNeedsConfirmation(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	loginDemo(t, a)

	a.setInput("no\n")
	require.NoError(t, a.DeleteAccount(ctx))
	assert.Contains(t, out.String(), "Cancelled")
	assert.True(t, a.isLoggedIn())

	a.setInput("yes\n")
	require.NoError(t, a.DeleteAccount(ctx))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.tasks.ListByUser(1))
}

func TestApp_CalendarDefaultsToToday(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	loginDemo(t, a)

	today := time.Now().Format("2006-01-02")
	a.setInput(strings.Join([]string{
		"Due today",
		"",
		today,
		"",
		"",
	}, "\n") + "\n")
	require.NoError(t, a.Add(ctx))

	out.Reset()
	require.NoError(t, a.Calendar(ctx, ""))
	assert.Contains(t, out.String(), "Due today")
}
