package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/selomitta/agenda-be/internal/auth"
	"github.com/selomitta/agenda-be/internal/models"
	"github.com/selomitta/agenda-be/internal/progress"
	"github.com/selomitta/agenda-be/internal/services"
)

// TaskHandler handles HTTP requests for tasks and their checklist items.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTaskPayload defines the structure for task creation requests.
type CreateTaskPayload struct {
	Title string                 `json:"title"`
	Items []models.ChecklistItem `json:"items"`
}

// ProgressResponse is the aggregate returned by GET /progress.
type ProgressResponse struct {
	Completed int     `json:"completed"`
	Pending   int     `json:"pending"`
	Percent   float64 `json:"percent"`
}

func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return "", false
	}
	return claims.UserID, true
}

// List returns the caller's tasks, optionally filtered by ?date=YYYY-MM-DD.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), uid, r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Create handles the request to create a new task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var payload CreateTaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.service.CreateTask(r.Context(), uid, payload.Title, payload.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// UpdateItem applies a partial update to one checklist item of the task
// named by the ?id= query parameter.
func (h *TaskHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeMessage(w, http.StatusBadRequest, "Task id is required.")
		return
	}

	var patch models.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if patch.ItemID == "" {
		writeMessage(w, http.StatusBadRequest, "Item id is required.")
		return
	}

	task, err := h.service.UpdateTaskItem(r.Context(), uid, taskID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete removes the task named by the ?id= query parameter.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeMessage(w, http.StatusBadRequest, "Task id is required.")
		return
	}

	if err := h.service.DeleteTask(r.Context(), uid, taskID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Task deleted")
}

// Progress returns completed/pending counts over the caller's tasks,
// honoring the same ?date= filter as List.
func (h *TaskHandler) Progress(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), uid, r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	summary := progress.Compute(tasks)
	writeJSON(w, http.StatusOK, ProgressResponse{
		Completed: summary.Completed,
		Pending:   summary.Pending,
		Percent:   summary.Percent(),
	})
}
