package models

import "time"

// Task is a named agenda group owning an ordered list of checklist items.
// Items are persisted as a single JSON document alongside the task row, so
// updates to a task's items are atomic per task.
type Task struct {
	ID        string          `json:"id"`
	UserID    string          `json:"-"`
	Title     string          `json:"title"`
	Items     []ChecklistItem `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ChecklistItem is an individual completable entry within a task.
// ScheduledDate, when set, is a YYYY-MM-DD string.
type ChecklistItem struct {
	ID            string  `json:"id"`
	Content       string  `json:"content"`
	IsCompleted   bool    `json:"isCompleted"`
	ScheduledDate *string `json:"scheduledDate"`
	Note          *string `json:"note"`
}

// ItemPatch describes a partial update to one checklist item. Nil fields are
// left untouched. Title, when set, renames the owning task as well.
type ItemPatch struct {
	ItemID        string  `json:"itemId"`
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	IsCompleted   *bool   `json:"isCompleted"`
	ScheduledDate *string `json:"scheduledDate"`
	Note          *string `json:"note"`
}
