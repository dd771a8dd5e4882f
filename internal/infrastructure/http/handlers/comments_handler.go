package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/WojciechM98/Team-Management-System/internal/application/comment"
	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/http/middleware"
)

// CommentsHandler handles comment endpoints. Requires JWT auth.
type CommentsHandler struct {
	commentRepo   ports.CommentRepository
	addComment    *comment.AddComment
	updateComment *comment.UpdateComment
	deleteComment *comment.DeleteComment
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewCommentsHandler(commentRepo ports.CommentRepository, addComment *comment.AddComment, updateComment *comment.UpdateComment, deleteComment *comment.DeleteComment, log zerolog.Logger) *CommentsHandler {
	return &CommentsHandler{
		commentRepo:   commentRepo,
		addComment:    addComment,
		updateComment: updateComment,
		deleteComment: deleteComment,
		validate:      validator.New(),
		log:           log,
	}
}

type CommentResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	AuthorID  string `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func commentToResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		TaskID:    c.TaskID.String(),
		AuthorID:  c.AuthorID.String(),
		Body:      c.Body,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

// ListByTask serves GET /tasks/{id}/comments.
func (h *CommentsHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid task id")
		return
	}
	comments, err := h.commentRepo.ListByTask(r.Context(), taskID)
	if err != nil {
		h.log.Error().Err(err).Msg("list comments failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	items := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		items = append(items, commentToResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": items})
}

// Add serves POST /tasks/{id}/comments. Only the owner or an assigned
// user may comment.
func (h *CommentsHandler) Add(w http.ResponseWriter, r *http.Request) {
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
		Body string `json:"body" validate:"required,min=1,max=4096"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.addComment.Execute(r.Context(), comment.AddCommentInput{
		Principal: principal,
		TaskID:    taskID,
		Body:      body.Body,
	})
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("add comment failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, commentToResponse(result.Comment))
}

// Get serves GET /comments/{id}.
func (h *CommentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCommentID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	c, err := h.commentRepo.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("get comment failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	if c == nil {
		writeErr(w, http.StatusNotFound, "comment not found")
		return
	}
	writeJSON(w, http.StatusOK, commentToResponse(c))
}

// Update serves PATCH /comments/{id}; author only.
func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	id, err := domain.ParseCommentID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	var body struct {
		Body *string `json:"body" validate:"omitempty,min=1,max=4096"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.updateComment.Execute(r.Context(), comment.UpdateCommentInput{
		Principal: principal,
		CommentID: id,
		Patch:     domain.CommentPatch{Body: body.Body},
	})
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("update comment failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, commentToResponse(result.Comment))
}

// Delete serves DELETE /comments/{id}; author only.
func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	id, err := domain.ParseCommentID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	if err := h.deleteComment.Execute(r.Context(), comment.DeleteCommentInput{Principal: principal, CommentID: id}); err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("delete comment failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "comment deleted"})
}
