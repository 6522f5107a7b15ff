package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/format"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/tasks"
	"github.com/dmitrijs2005/taskflow/internal/validate"
)

// requireUser returns the session profile or prints a message and nil.
func (a *App) requireUser() *models.User {
	u := a.identity.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Please log in first")
	}
	return u
}

// ownTask fetches a task and checks it belongs to the given user.
func (a *App) ownTask(arg string, userID int64) (*models.Task, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: expected a numeric task id")
		return nil, err
	}
	task, err := a.tasks.GetByID(id)
	if err != nil || task.UserID != userID {
		fmt.Fprintln(a.out, "Not found")
		return nil, common.ErrNotFound
	}
	return task, nil
}

func (a *App) printTask(task models.Task) {
	mark := " "
	if task.Status == models.StatusCompleted {
		mark = "x"
	}
	fmt.Fprintf(a.out, "[%s] %d. %s (%s) %s\n",
		mark, task.ID, task.Title, task.Priority, format.DateTime(task.DueDate, task.DueTime))
}

// Add prompts for the task fields and creates the task for the session user.
func (a *App) Add(ctx context.Context) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}

	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(a.out, "Title is required")
		return nil
	}

	description, err := GetSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}

	dueDate, err := GetSimpleText(a.reader, "Enter due date YYYY-MM-DD (optional)", a.out)
	if err != nil {
		return err
	}
	if !validate.Date(dueDate) {
		fmt.Fprintln(a.out, "Invalid date, expected YYYY-MM-DD")
		return nil
	}

	dueTime, err := GetSimpleText(a.reader, "Enter due time HH:MM (optional)", a.out)
	if err != nil {
		return err
	}
	if !validate.Time(dueTime) {
		fmt.Fprintln(a.out, "Invalid time, expected HH:MM")
		return nil
	}

	priorityText, err := GetSimpleText(a.reader, "Enter priority high/medium/low (default medium)", a.out)
	if err != nil {
		return err
	}
	priority := models.Priority(priorityText)
	if priorityText != "" && !priority.Valid() {
		fmt.Fprintln(a.out, "Priority must be high, medium, or low")
		return nil
	}

	task, err := a.tasks.Create(ctx, user.ID, title, description, dueDate, dueTime, priority)
	if err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Created task %d\n", task.ID)
	return nil
}

// List prints the session user's tasks, optionally filtered by status
// ("all", "active", "completed"; default all).
func (a *App) List(ctx context.Context, filter string) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}

	list := a.tasks.ListByUser(user.ID)
	shown := 0
	for _, task := range list {
		switch filter {
		case "active":
			if task.Status != models.StatusActive {
				continue
			}
		case "completed":
			if task.Status != models.StatusCompleted {
				continue
			}
		}
		a.printTask(task)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(a.out, "No tasks yet. Create your first task!")
	}
	return nil
}

// Done toggles a task between active and completed.
func (a *App) Done(ctx context.Context, arg string) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}
	task, err := a.ownTask(arg, user.ID)
	if err != nil {
		return err
	}

	updated, err := a.tasks.ToggleStatus(ctx, task.ID)
	if err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}
	a.printTask(*updated)
	return nil
}

// Edit prompts for replacement field values; empty input keeps the stored
// value.
func (a *App) Edit(ctx context.Context, arg string) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}
	task, err := a.ownTask(arg, user.ID)
	if err != nil {
		return err
	}

	var params tasks.UpdateParams

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", task.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		params.Title = &title
	}

	description, err := GetSimpleText(a.reader, fmt.Sprintf("Description [%s]", task.Description), a.out)
	if err != nil {
		return err
	}
	if description != "" {
		params.Description = &description
	}

	dueDate, err := GetSimpleText(a.reader, fmt.Sprintf("Due date [%s]", task.DueDate), a.out)
	if err != nil {
		return err
	}
	if dueDate != "" {
		if !validate.Date(dueDate) {
			fmt.Fprintln(a.out, "Invalid date, expected YYYY-MM-DD")
			return nil
		}
		params.DueDate = &dueDate
	}

	dueTime, err := GetSimpleText(a.reader, fmt.Sprintf("Due time [%s]", task.DueTime), a.out)
	if err != nil {
		return err
	}
	if dueTime != "" {
		if !validate.Time(dueTime) {
			fmt.Fprintln(a.out, "Invalid time, expected HH:MM")
			return nil
		}
		params.DueTime = &dueTime
	}

	priorityText, err := GetSimpleText(a.reader, fmt.Sprintf("Priority [%s]", task.Priority), a.out)
	if err != nil {
		return err
	}
	if priorityText != "" {
		priority := models.Priority(priorityText)
		if !priority.Valid() {
			fmt.Fprintln(a.out, "Priority must be high, medium, or low")
			return nil
		}
		params.Priority = &priority
	}

	updated, err := a.tasks.Update(ctx, task.ID, params)
	if err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}
	a.printTask(*updated)
	return nil
}

// Delete removes a task.
func (a *App) Delete(ctx context.Context, arg string) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}
	task, err := a.ownTask(arg, user.ID)
	if err != nil {
		return err
	}

	if err := a.tasks.Delete(ctx, task.ID); err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "Deleted task %d\n", task.ID)
	return nil
}

// ClearCompleted removes all of the session user's completed tasks.
func (a *App) ClearCompleted(ctx context.Context) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}

	removed, err := a.tasks.ClearCompleted(ctx, user.ID)
	if err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "Removed %d completed task(s)\n", removed)
	return nil
}

// Stats prints the aggregate counters for the session user.
func (a *App) Stats(ctx context.Context) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}

	stats := a.tasks.Stats(user.ID)
	fmt.Fprintf(a.out, "Total: %d  Completed: %d  Pending: %d  Completion rate: %d%%\n",
		stats.Total, stats.Completed, stats.Pending, stats.CompletionRate)
	return nil
}

// Calendar prints the tasks due on the given day (default today).
func (a *App) Calendar(ctx context.Context, arg string) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}

	date := arg
	if date == "" {
		date = format.YMD(time.Now())
	}
	if !validate.Date(date) {
		fmt.Fprintln(a.out, "Invalid date, expected YYYY-MM-DD")
		return nil
	}

	list := a.tasks.ListByUserAndDate(user.ID, date)
	if len(list) == 0 {
		fmt.Fprintf(a.out, "Nothing due on %s\n", format.Date(date))
		return nil
	}
	for _, task := range list {
		a.printTask(task)
	}
	return nil
}

// Export writes the session user's tasks to tasks_export.json in the
// current directory.
func (a *App) Export(ctx context.Context) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}

	data, err := a.tasks.Export(user.ID)
	if err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}

	if err := os.WriteFile(tasks.ExportFileName, data, 0o600); err != nil {
		fmt.Fprintf(a.out, "Could not write export: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Exported to %s\n", tasks.ExportFileName)
	return nil
}
