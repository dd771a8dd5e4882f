package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WojciechM98/Team-Management-System/internal/application/auth"
	"github.com/WojciechM98/Team-Management-System/internal/application/comment"
	"github.com/WojciechM98/Team-Management-System/internal/application/task"
	"github.com/WojciechM98/Team-Management-System/internal/application/user"
	infraauth "github.com/WojciechM98/Team-Management-System/internal/infrastructure/auth"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/http/handlers"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/http/middleware"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/persistence/memory"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/security"
)

// apiFixture wires the full router over the in-memory store, with cheap
// argon2 parameters and an adjustable clock for expiry tests.
type apiFixture struct {
	handler http.Handler
	clock   *time.Time
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := &apiFixture{clock: &now}

	store := memory.NewStore()
	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}, 4)
	issuer := infraauth.NewTokenIssuer([]byte("api-test-secret"), "teammgmt", func() time.Time { return *f.clock })
	log := zerolog.Nop()

	authHandler := handlers.NewAuthHandler(
		auth.NewRegisterUser(store.Users(), hasher),
		auth.NewLogin(store.Users(), hasher, issuer, 15*time.Minute),
		auth.NewChangePassword(store.Users(), hasher),
		nil, log,
	)
	usersHandler := handlers.NewUsersHandler(store.Users(), user.NewUpdateUser(store.Users()), user.NewDeleteUser(store.Users()), nil, log)
	tasksHandler := handlers.NewTasksHandler(store.Tasks(), store.Comments(),
		task.NewCreateTask(store.Tasks()),
		task.NewUpdateTask(store.Tasks()),
		task.NewDeleteTask(store.Tasks()),
		task.NewAssignUser(store.Tasks(), store.Users(), nil),
		task.NewUnassignUser(store.Tasks()),
		nil, log,
	)
	commentsHandler := handlers.NewCommentsHandler(store.Comments(),
		comment.NewAddComment(store.Tasks(), store.Comments(), nil),
		comment.NewUpdateComment(store.Comments()),
		comment.NewDeleteComment(store.Comments()),
		log,
	)

	f.handler = NewRouter(RouterConfig{
		AuthHandler:     authHandler,
		UsersHandler:    usersHandler,
		TasksHandler:    tasksHandler,
		CommentsHandler: commentsHandler,
		RequireJWT:      middleware.NewAuthValidator(issuer, store.Users()).Handler,
		Log:             log,
	})
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func (f *apiFixture) signupAndLogin(t *testing.T, username string) string {
	t.Helper()
	rec, _ := f.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password-for-" + username,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "signup %s: %s", username, rec.Body.String())
	rec, body := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username_or_email": username,
		"password":          "password-for-" + username,
	})
	require.Equal(t, http.StatusOK, rec.Code, "login %s: %s", username, rec.Body.String())
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignupLoginMe(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signupAndLogin(t, "alice")

	rec, body := f.do(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	_, leaked := body["password_hash"]
	assert.False(t, leaked, "password hash must never be serialized")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signupAndLogin(t, "alice")

	for _, tc := range []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"truncated token", token[:len(token)-2]},
		{"garbage", "garbage"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := f.do(t, http.MethodGet, "/users/me", tc.token, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestTokenExpiresAfterTTL(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signupAndLogin(t, "alice")

	rec, _ := f.do(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	*f.clock = f.clock.Add(16 * time.Minute)
	rec, _ = f.do(t, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newAPIFixture(t)
	f.signupAndLogin(t, "alice")

	rec, _ := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username_or_email": "alice",
		"password":          "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec2, _ := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username_or_email": "nobody",
		"password":          "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
	assert.Equal(t, rec.Body.String(), rec2.Body.String(), "unknown account and wrong password look identical")
}

func TestLoginAcceptsMixedCaseEmail(t *testing.T) {
	// emails are lowercased at signup; logging in with the exact string
	// used at signup must still work
	f := newAPIFixture(t)
	rec, _ := f.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "carol",
		"email":    "Carol@Example.com",
		"password": "carol-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, identifier := range []string{"Carol@Example.com", "carol@example.com", "CAROL@EXAMPLE.COM"} {
		rec, body := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
			"username_or_email": identifier,
			"password":          "carol-password",
		})
		assert.Equal(t, http.StatusOK, rec.Code, "login via %q: %s", identifier, rec.Body.String())
		assert.NotEmpty(t, body["access_token"])
	}
}

func TestDuplicateSignupConflicts(t *testing.T) {
	f := newAPIFixture(t)
	f.signupAndLogin(t, "alice")

	rec, _ := f.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "alice",
		"email":    "fresh@example.com",
		"password": "long-enough-pass",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTaskOwnershipOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	aliceToken := f.signupAndLogin(t, "alice")
	bobToken := f.signupAndLogin(t, "bob")

	rec, created := f.do(t, http.MethodPost, "/tasks", aliceToken, map[string]string{
		"title": "plan the rollout",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	taskID, _ := created["id"].(string)
	require.NotEmpty(t, taskID)

	// any authenticated user can read
	rec, _ = f.do(t, http.MethodGet, "/tasks/"+taskID, bobToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// only the owner can modify
	rec, _ = f.do(t, http.MethodPatch, "/tasks/"+taskID, bobToken, map[string]string{"title": "hijacked title"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = f.do(t, http.MethodDelete, "/tasks/"+taskID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, updated := f.do(t, http.MethodPatch, "/tasks/"+taskID, aliceToken, map[string]string{"title": "revised rollout"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "revised rollout", updated["title"])

	// unknown IDs are 404 regardless of who asks
	rec, _ = f.do(t, http.MethodPatch, "/tasks/11111111-2222-3333-4444-555555555555", bobToken, map[string]string{"title": "probing around"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentFlowOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	aliceToken := f.signupAndLogin(t, "alice")
	bobToken := f.signupAndLogin(t, "bob")

	rec, created := f.do(t, http.MethodPost, "/tasks", aliceToken, map[string]string{"title": "shared project"})
	require.Equal(t, http.StatusCreated, rec.Code)
	taskID := created["id"].(string)

	// bob is not assigned yet
	rec, _ = f.do(t, http.MethodPost, fmt.Sprintf("/tasks/%s/comments", taskID), bobToken, map[string]string{"body": "can I help?"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, me := f.do(t, http.MethodGet, "/users/me", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bobID := me["id"].(string)
	rec, _ = f.do(t, http.MethodPost, fmt.Sprintf("/tasks/%s/assignments", taskID), aliceToken, map[string]string{"user_id": bobID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, posted := f.do(t, http.MethodPost, fmt.Sprintf("/tasks/%s/comments", taskID), bobToken, map[string]string{"body": "starting today"})
	require.Equal(t, http.StatusCreated, rec.Code)
	commentID := posted["id"].(string)
	assert.Equal(t, bobID, posted["author_id"])

	// the detail view carries the thread
	rec, detail := f.do(t, http.MethodGet, "/tasks/"+taskID, aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	thread, _ := detail["comments"].([]interface{})
	assert.Len(t, thread, 1)

	// the task owner cannot edit bob's comment
	rec, _ = f.do(t, http.MethodPatch, "/comments/"+commentID, aliceToken, map[string]string{"body": "rewritten"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, edited := f.do(t, http.MethodPatch, "/comments/"+commentID, bobToken, map[string]string{"body": "started yesterday"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "started yesterday", edited["body"])

	// unassigning bob revokes commenting immediately
	rec, _ = f.do(t, http.MethodDelete, fmt.Sprintf("/tasks/%s/assignments/%s", taskID, bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = f.do(t, http.MethodPost, fmt.Sprintf("/tasks/%s/comments", taskID), bobToken, map[string]string{"body": "one more thing"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteAccountInvalidatesToken(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signupAndLogin(t, "alice")

	rec, me := f.do(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	id := me["id"].(string)

	rec, _ = f.do(t, http.MethodDelete, "/users/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the still-unexpired token now fails the live-account check
	rec, _ = f.do(t, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePasswordOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signupAndLogin(t, "alice")

	rec, _ := f.do(t, http.MethodPost, "/auth/change-password", token, map[string]string{
		"current_password": "wrong-guess",
		"new_password":     "brand-new-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/auth/change-password", token, map[string]string{
		"current_password": "password-for-alice",
		"new_password":     "brand-new-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username_or_email": "alice",
		"password":          "brand-new-password",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
