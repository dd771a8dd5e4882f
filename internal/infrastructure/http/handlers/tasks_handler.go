package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/application/task"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/http/middleware"
)

// TasksHandler handles /tasks/*. Requires JWT auth.
type TasksHandler struct {
	taskRepo    ports.TaskRepository
	commentRepo ports.CommentRepository
	createTask  *task.CreateTask
	updateTask  *task.UpdateTask
	deleteTask  *task.DeleteTask
	assignUser  *task.AssignUser
	unassign    *task.UnassignUser
	emitter     ports.WebhookEmitter
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewTasksHandler(taskRepo ports.TaskRepository, commentRepo ports.CommentRepository, createTask *task.CreateTask, updateTask *task.UpdateTask, deleteTask *task.DeleteTask, assignUser *task.AssignUser, unassign *task.UnassignUser, emitter ports.WebhookEmitter, log zerolog.Logger) *TasksHandler {
	return &TasksHandler{
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
		createTask:  createTask,
		updateTask:  updateTask,
		deleteTask:  deleteTask,
		assignUser:  assignUser,
		unassign:    unassign,
		emitter:     emitter,
		validate:    validator.New(),
		log:         log,
	}
}

// TaskResponse is the JSON shape for task resources.
type TaskResponse struct {
	ID              string   `json:"id"`
	OwnerID         string   `json:"owner_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	StartDate       string   `json:"start_date"`
	EndDate         *string  `json:"end_date,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	AssignedUserIDs []string `json:"assigned_user_ids"`
}

func taskToResponse(t *domain.Task) TaskResponse {
	var endDate *string
	if t.EndDate != nil {
		s := t.EndDate.Format(time.RFC3339)
		endDate = &s
	}
	assigned := make([]string, 0, len(t.AssignedUserIDs))
	for _, id := range t.AssignedUserIDs {
		assigned = append(assigned, id.String())
	}
	return TaskResponse{
		ID:              t.ID.String(),
		OwnerID:         t.OwnerID.String(),
		Title:           t.Title,
		Description:     t.Description,
		StartDate:       t.StartDate.Format(time.RFC3339),
		EndDate:         endDate,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.Format(time.RFC3339),
		AssignedUserIDs: assigned,
	}
}

// List serves GET /tasks.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := listParams(r)
	tasks, err := h.taskRepo.List(r.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list tasks failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	items := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskToResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": items})
}

// Create serves POST /tasks; the Principal becomes the owner.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	var body struct {
		Title       string     `json:"title" validate:"required,min=5,max=512"`
		Description string     `json:"description" validate:"max=4096"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.createTask.Execute(r.Context(), task.CreateTaskInput{
		Owner:       principal,
		Title:       body.Title,
		Description: body.Description,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create task failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, taskToResponse(result.Task))
}

// Get serves GET /tasks/{id}; the detail view carries the comment thread.
func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid task id")
		return
	}
	t, err := h.taskRepo.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("get task failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	if t == nil {
		writeErr(w, http.StatusNotFound, "task not found")
		return
	}
	comments, err := h.commentRepo.ListByTask(r.Context(), t.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("list task comments failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	thread := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		thread = append(thread, commentToResponse(c))
	}
	resp := struct {
		TaskResponse
		Comments []CommentResponse `json:"comments"`
	}{taskToResponse(t), thread}
	writeJSON(w, http.StatusOK, resp)
}

// Update serves PATCH /tasks/{id}; owner only.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	id, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid task id")
		return
	}
	var body struct {
		Title       *string    `json:"title" validate:"omitempty,min=5,max=512"`
		Description *string    `json:"description" validate:"omitempty,max=4096"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.updateTask.Execute(r.Context(), task.UpdateTaskInput{
		Principal: principal,
		TaskID:    id,
		Patch: domain.TaskPatch{
			Title:       body.Title,
			Description: body.Description,
			StartDate:   body.StartDate,
			EndDate:     body.EndDate,
		},
	})
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("update task failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, taskToResponse(result.Task))
}

// Delete serves DELETE /tasks/{id}; owner only. Comments and assignments
// are deleted along with the task.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	id, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := h.deleteTask.Execute(r.Context(), task.DeleteTaskInput{Principal: principal, TaskID: id}); err != nil {
		AuditEmit(h.log, r, h.emitter, "task.delete", principal.ID.String(), false, err.Error())
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("delete task failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "task.delete", principal.ID.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]string{
		"detail": "task deleted; its comments were deleted along with the task",
	})
}

// Assign serves POST /tasks/{id}/assignments; owner only.
func (h *TasksHandler) Assign(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	taskID, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid task id")
		return
	}
	var body struct {
		UserID string `json:"user_id" validate:"required,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := domain.ParseUserID(body.UserID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid user id")
		return
	}
	err = h.assignUser.Execute(r.Context(), task.AssignUserInput{
		Principal: principal,
		TaskID:    taskID,
		UserID:    userID,
	})
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("assign user failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "user assigned to task"})
}

// Unassign serves DELETE /tasks/{id}/assignments/{user_id}; owner only.
func (h *TasksHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	taskID, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid task id")
		return
	}
	userID, err := domain.ParseUserID(chi.URLParam(r, "user_id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid user id")
		return
	}
	err = h.unassign.Execute(r.Context(), task.UnassignUserInput{
		Principal: principal,
		TaskID:    taskID,
		UserID:    userID,
	})
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("unassign user failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "user unassigned from task"})
}
