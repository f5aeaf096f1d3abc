package progress

import (
	"testing"

	"github.com/selomitta/agenda-be/internal/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func sampleTasks() []models.Task {
	return []models.Task{
		{
			ID:    "t1",
			Title: "Groceries",
			Items: []models.ChecklistItem{
				{ID: "i1", Content: "Milk", IsCompleted: true},
				{ID: "i2", Content: "Eggs"},
			},
		},
		{
			ID:    "t2",
			Title: "Chores",
			Items: []models.ChecklistItem{
				{ID: "i3", Content: "Laundry", IsCompleted: true, ScheduledDate: strPtr("2026-01-02")},
			},
		},
		{ID: "t3", Title: "Empty"},
	}
}

func TestCompute_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Compute(nil))
	assert.Equal(t, Summary{}, Compute([]models.Task{}))
	assert.Equal(t, float64(0), Compute(nil).Percent())
}

func TestCompute_Counts(t *testing.T) {
	s := Compute(sampleTasks())
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 1, s.Pending)
	assert.InDelta(t, 66.66, s.Percent(), 0.01)
}

func TestCompute_OrderIndependent(t *testing.T) {
	tasks := sampleTasks()
	forward := Compute(tasks)

	reversed := make([]models.Task, 0, len(tasks))
	for i := len(tasks) - 1; i >= 0; i-- {
		reversed = append(reversed, tasks[i])
	}
	assert.Equal(t, forward, Compute(reversed))
}

func TestPercent_AllCompleted(t *testing.T) {
	s := Summary{Completed: 4}
	assert.Equal(t, float64(100), s.Percent())
}
