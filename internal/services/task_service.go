package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/selomitta/agenda-be/internal/models"
)

// TaskServiceProvider defines the interface for task services. Every
// operation is scoped to the authenticated user; ids belonging to another
// user behave like missing ids.
type TaskServiceProvider interface {
	ListTasks(ctx context.Context, userID, date string) ([]models.Task, error)
	CreateTask(ctx context.Context, userID, title string, items []models.ChecklistItem) (models.Task, error)
	UpdateTaskItem(ctx context.Context, userID, taskID string, patch models.ItemPatch) (models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}

// TaskService provides business logic for task management.
type TaskService struct {
	db *sql.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

// ListTasks returns the user's tasks in insertion order. A non-empty date
// restricts the result to tasks with at least one item scheduled on it.
func (s *TaskService) ListTasks(ctx context.Context, userID, date string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, title, items_json, created_at FROM tasks WHERE user_id = ? ORDER BY created_at, rowid",
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		if date != "" && !hasItemOn(task, date) {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CreateTask persists a new task, assigning ids to the task and to every
// item lacking one. Caller-supplied item ids must not collide within the task.
func (s *TaskService) CreateTask(ctx context.Context, userID, title string, items []models.ChecklistItem) (models.Task, error) {
	if title == "" {
		return models.Task{}, models.NewValidationError("Title is required.")
	}

	seen := make(map[string]bool, len(items))
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		if seen[items[i].ID] {
			return models.Task{}, models.NewValidationError("Duplicate item id within task.")
		}
		seen[items[i].ID] = true
		if err := validateScheduledDate(items[i].ScheduledDate); err != nil {
			return models.Task{}, err
		}
	}
	if items == nil {
		items = []models.ChecklistItem{}
	}

	task := models.Task{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Items:     items,
		CreatedAt: time.Now().UTC(),
	}

	itemsJSON, err := json.Marshal(task.Items)
	if err != nil {
		return models.Task{}, fmt.Errorf("encoding items: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO tasks(id, user_id, title, items_json, created_at) VALUES(?, ?, ?, ?, ?)",
		task.ID, task.UserID, task.Title, string(itemsJSON), task.CreatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("inserting task: %w", err)
	}
	return task, nil
}

// UpdateTaskItem applies a partial update to one checklist item inside a
// transaction, so concurrent readers never observe a half-applied patch.
func (s *TaskService) UpdateTaskItem(ctx context.Context, userID, taskID string, patch models.ItemPatch) (models.Task, error) {
	if err := validateScheduledDate(patch.ScheduledDate); err != nil {
		return models.Task{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	var task models.Task
	var itemsJSON string
	row := tx.QueryRowContext(ctx,
		"SELECT id, user_id, title, items_json, created_at FROM tasks WHERE id = ? AND user_id = ?",
		taskID, userID)
	if err := row.Scan(&task.ID, &task.UserID, &task.Title, &itemsJSON, &task.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, models.ErrNotFound
		}
		return models.Task{}, fmt.Errorf("querying task: %w", err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &task.Items); err != nil {
		return models.Task{}, fmt.Errorf("decoding items: %w", err)
	}

	idx := -1
	for i := range task.Items {
		if task.Items[i].ID == patch.ItemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Task{}, models.ErrNotFound
	}

	item := &task.Items[idx]
	if patch.Content != nil {
		item.Content = *patch.Content
	}
	if patch.IsCompleted != nil {
		item.IsCompleted = *patch.IsCompleted
	}
	if patch.ScheduledDate != nil {
		item.ScheduledDate = patch.ScheduledDate
	}
	if patch.Note != nil {
		item.Note = patch.Note
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}

	updated, err := json.Marshal(task.Items)
	if err != nil {
		return models.Task{}, fmt.Errorf("encoding items: %w", err)
	}
	_, err = tx.ExecContext(ctx, "UPDATE tasks SET title = ?, items_json = ? WHERE id = ?",
		task.Title, string(updated), task.ID)
	if err != nil {
		return models.Task{}, fmt.Errorf("updating task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("committing tx: %w", err)
	}
	return task, nil
}

// DeleteTask removes the task and all its items. Deleting an id that does
// not resolve (or belongs to someone else) reports ErrNotFound so callers
// can detect stale state.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanTask(rows *sql.Rows) (models.Task, error) {
	var task models.Task
	var itemsJSON string
	if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &itemsJSON, &task.CreatedAt); err != nil {
		return models.Task{}, fmt.Errorf("scanning task: %w", err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &task.Items); err != nil {
		return models.Task{}, fmt.Errorf("decoding items: %w", err)
	}
	return task, nil
}

func hasItemOn(task models.Task, date string) bool {
	for _, item := range task.Items {
		if item.ScheduledDate != nil && *item.ScheduledDate == date {
			return true
		}
	}
	return false
}

func validateScheduledDate(date *string) error {
	if date == nil || *date == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *date); err != nil {
		return models.NewValidationError("Scheduled date must be in YYYY-MM-DD format.")
	}
	return nil
}
