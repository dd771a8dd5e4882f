package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/WojciechM98/Team-Management-System/internal/application/auth"
	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register       *auth.RegisterUser
	login          *auth.Login
	changePassword *auth.ChangePassword
	emitter        ports.WebhookEmitter
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewAuthHandler(register *auth.RegisterUser, login *auth.Login, changePassword *auth.ChangePassword, emitter ports.WebhookEmitter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register:       register,
		login:          login,
		changePassword: changePassword,
		emitter:        emitter,
		validate:       validator.New(),
		log:            log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"required,min=3,max=512"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	username := SanitizeUsername(body.Username)
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if username == "" || email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "invalid username, email or password length")
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterUserInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.signup", "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		if errors.Is(err, domerrors.ErrUserExists) {
			writeErr(w, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeErr(w, http.StatusBadRequest, "invalid email address")
			return
		}
		h.log.Error().Err(err).Msg("register failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.signup", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("signup", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         result.User.ID.String(),
		"username":   result.User.Username,
		"email":      result.User.Email,
		"created_at": result.User.CreatedAt,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UsernameOrEmail string `json:"username_or_email" validate:"required,max=512"`
		Password        string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		UsernameOrEmail: body.UsernameOrEmail,
		Password:        body.Password,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			// one generic 401 whether the account is unknown or the
			// password is wrong
			writeErr(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": result.AccessToken,
		"token_type":   result.TokenType,
		"expires_in":   result.ExpiresIn,
	})
}

// ChangePassword requires a valid bearer token; the current password is
// re-verified anyway so a leaked token alone cannot rotate the credential.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	var body struct {
		CurrentPassword string `json:"current_password" validate:"required,max=128"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	err := h.changePassword.Execute(r.Context(), auth.ChangePasswordInput{
		UserID:          principal.ID,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     SanitizePassword(body.NewPassword),
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.change_password", principal.ID.String(), false, err.Error())
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeErr(w, http.StatusUnauthorized, "current password is incorrect")
			return
		}
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("change password failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.change_password", principal.ID.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]string{"detail": "password updated"})
}
