// Package progress computes completion statistics over a task list.
package progress

import "github.com/selomitta/agenda-be/internal/models"

// Summary holds completed/pending item counts across a task list.
type Summary struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Compute counts checklist items by completion flag. It is a pure, total
// function: an empty or nil input yields a zero Summary.
func Compute(tasks []models.Task) Summary {
	var s Summary
	for _, task := range tasks {
		for _, item := range task.Items {
			if item.IsCompleted {
				s.Completed++
			} else {
				s.Pending++
			}
		}
	}
	return s
}

// Percent returns the completion percentage, 0 when there are no items.
func (s Summary) Percent() float64 {
	total := s.Completed + s.Pending
	if total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(total) * 100
}
