package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/application/user"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/http/middleware"
)

// UsersHandler handles /users/*. Requires JWT auth.
type UsersHandler struct {
	userRepo   ports.UserRepository
	updateUser *user.UpdateUser
	deleteUser *user.DeleteUser
	emitter    ports.WebhookEmitter
	validate   *validator.Validate
	log        zerolog.Logger
}

func NewUsersHandler(userRepo ports.UserRepository, updateUser *user.UpdateUser, deleteUser *user.DeleteUser, emitter ports.WebhookEmitter, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{
		userRepo:   userRepo,
		updateUser: updateUser,
		deleteUser: deleteUser,
		emitter:    emitter,
		validate:   validator.New(),
		log:        log,
	}
}

// UserResponse is the JSON shape for user resources (no password material).
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// Me returns the Principal resolved by the auth middleware.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(principal))
}

// Get serves GET /users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid user id")
		return
	}
	u, err := h.userRepo.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("get user failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	if u == nil {
		writeErr(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(u))
}

const defaultListLimit = 20
const maxListLimit = 100

// List serves GET /users with optional limit/offset.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := listParams(r)
	users, err := h.userRepo.List(r.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	items := make([]UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, userToResponse(u))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": items})
}

// Update serves PATCH /users/{id}; self only.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	id, err := domain.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var body struct {
		Username *string `json:"username" validate:"omitempty,min=3,max=512"`
		Email    *string `json:"email" validate:"omitempty,email,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	patch := domain.UserPatch{Username: body.Username}
	if body.Email != nil {
		email := SanitizeEmail(*body.Email)
		if email == "" {
			writeErr(w, http.StatusBadRequest, "invalid email")
			return
		}
		patch.Email = &email
	}
	result, err := h.updateUser.Execute(r.Context(), user.UpdateUserInput{
		Principal: principal,
		UserID:    id,
		Patch:     patch,
	})
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("update user failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(result.User))
}

// Delete serves DELETE /users/{id}; self only. Owned tasks and their
// comments go with the account.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	id, err := domain.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.deleteUser.Execute(r.Context(), user.DeleteUserInput{Principal: principal, UserID: id}); err != nil {
		AuditEmit(h.log, r, h.emitter, "user.delete", principal.ID.String(), false, err.Error())
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("delete user failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.delete", principal.ID.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]string{
		"detail": "user deleted; owned tasks and their comments were deleted along with the user",
	})
}

func listParams(r *http.Request) (limit, offset int) {
	limit = defaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
			if limit > maxListLimit {
				limit = maxListLimit
			}
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
