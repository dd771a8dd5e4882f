package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WojciechM98/Team-Management-System/internal/domain"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/persistence/memory"
)

type recordingEnqueuer struct {
	assigned []string // assignee IDs in enqueue order
	comments []string
}

func (r *recordingEnqueuer) EnqueueTaskAssigned(ctx context.Context, taskID, taskTitle, assigneeID string) error {
	r.assigned = append(r.assigned, assigneeID)
	return nil
}

func (r *recordingEnqueuer) EnqueueCommentAdded(ctx context.Context, taskID, commentID, authorID string) error {
	r.comments = append(r.comments, commentID)
	return nil
}

func newUser(t *testing.T, store *memory.Store, username string) *domain.User {
	t.Helper()
	now := time.Now()
	u := &domain.User{
		ID:        domain.NewUserID(uuid.New()),
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestCreateTaskDefaultsStartDate(t *testing.T) {
	store := memory.NewStore()
	owner := newUser(t, store, "owner")
	create := NewCreateTask(store.Tasks())

	res, err := create.Execute(context.Background(), CreateTaskInput{
		Owner: owner,
		Title: "write the report",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, res.Task.OwnerID)
	assert.Equal(t, time.Now().Truncate(24*time.Hour), res.Task.StartDate)
	assert.Nil(t, res.Task.EndDate)
	assert.Empty(t, res.Task.AssignedUserIDs)
}

func TestUpdateTaskOwnerOnly(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := newUser(t, store, "owner")
	intruder := newUser(t, store, "intruder")
	create := NewCreateTask(store.Tasks())
	update := NewUpdateTask(store.Tasks())

	res, err := create.Execute(ctx, CreateTaskInput{Owner: owner, Title: "initial title"})
	require.NoError(t, err)

	newTitle := "changed title"
	_, err = update.Execute(ctx, UpdateTaskInput{
		Principal: intruder,
		TaskID:    res.Task.ID,
		Patch:     domain.TaskPatch{Title: &newTitle},
	})
	assert.ErrorIs(t, err, domerrors.ErrForbidden)

	updated, err := update.Execute(ctx, UpdateTaskInput{
		Principal: owner,
		TaskID:    res.Task.ID,
		Patch:     domain.TaskPatch{Title: &newTitle},
	})
	require.NoError(t, err)
	assert.Equal(t, "changed title", updated.Task.Title)
	// untouched fields survive the patch
	assert.Equal(t, res.Task.StartDate, updated.Task.StartDate)
}

func TestMissingTaskBeatsForbidden(t *testing.T) {
	// a non-owner probing a nonexistent ID learns only that it does not exist
	ctx := context.Background()
	store := memory.NewStore()
	intruder := newUser(t, store, "intruder")
	missing := domain.NewTaskID(uuid.New())

	_, err := NewUpdateTask(store.Tasks()).Execute(ctx, UpdateTaskInput{Principal: intruder, TaskID: missing})
	assert.ErrorIs(t, err, domerrors.ErrTaskNotFound)
	err = NewDeleteTask(store.Tasks()).Execute(ctx, DeleteTaskInput{Principal: intruder, TaskID: missing})
	assert.ErrorIs(t, err, domerrors.ErrTaskNotFound)
	err = NewAssignUser(store.Tasks(), store.Users(), nil).Execute(ctx, AssignUserInput{Principal: intruder, TaskID: missing, UserID: intruder.ID})
	assert.ErrorIs(t, err, domerrors.ErrTaskNotFound)
}

func TestAssignUser(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := newUser(t, store, "owner")
	worker := newUser(t, store, "worker")
	enq := &recordingEnqueuer{}
	create := NewCreateTask(store.Tasks())
	assign := NewAssignUser(store.Tasks(), store.Users(), enq)

	res, err := create.Execute(ctx, CreateTaskInput{Owner: owner, Title: "shared effort"})
	require.NoError(t, err)

	err = assign.Execute(ctx, AssignUserInput{Principal: worker, TaskID: res.Task.ID, UserID: worker.ID})
	assert.ErrorIs(t, err, domerrors.ErrForbidden, "non-owner cannot assign")

	err = assign.Execute(ctx, AssignUserInput{Principal: owner, TaskID: res.Task.ID, UserID: domain.NewUserID(uuid.New())})
	assert.ErrorIs(t, err, domerrors.ErrUserNotFound, "assignee must exist")

	require.NoError(t, assign.Execute(ctx, AssignUserInput{Principal: owner, TaskID: res.Task.ID, UserID: worker.ID}))
	got, err := store.Tasks().GetByID(ctx, res.Task.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAssigned(worker.ID))
	assert.Equal(t, []string{worker.ID.String()}, enq.assigned)

	// re-assigning is a no-op success and does not enqueue again
	require.NoError(t, assign.Execute(ctx, AssignUserInput{Principal: owner, TaskID: res.Task.ID, UserID: worker.ID}))
	assert.Len(t, enq.assigned, 1)
}

func TestUnassignUser(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := newUser(t, store, "owner")
	worker := newUser(t, store, "worker")
	create := NewCreateTask(store.Tasks())
	assign := NewAssignUser(store.Tasks(), store.Users(), nil)
	unassign := NewUnassignUser(store.Tasks())

	res, err := create.Execute(ctx, CreateTaskInput{Owner: owner, Title: "shared effort"})
	require.NoError(t, err)

	err = unassign.Execute(ctx, UnassignUserInput{Principal: owner, TaskID: res.Task.ID, UserID: worker.ID})
	assert.ErrorIs(t, err, domerrors.ErrUserNotFound, "not assigned yet")

	require.NoError(t, assign.Execute(ctx, AssignUserInput{Principal: owner, TaskID: res.Task.ID, UserID: worker.ID}))
	require.NoError(t, unassign.Execute(ctx, UnassignUserInput{Principal: owner, TaskID: res.Task.ID, UserID: worker.ID}))

	got, err := store.Tasks().GetByID(ctx, res.Task.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAssigned(worker.ID))
}

func TestDeleteTaskRemovesCommentsAndAssignments(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := newUser(t, store, "owner")
	worker := newUser(t, store, "worker")
	create := NewCreateTask(store.Tasks())
	assign := NewAssignUser(store.Tasks(), store.Users(), nil)

	res, err := create.Execute(ctx, CreateTaskInput{Owner: owner, Title: "doomed task"})
	require.NoError(t, err)
	require.NoError(t, assign.Execute(ctx, AssignUserInput{Principal: owner, TaskID: res.Task.ID, UserID: worker.ID}))
	c := &domain.Comment{
		ID:       domain.NewCommentID(uuid.New()),
		TaskID:   res.Task.ID,
		AuthorID: worker.ID,
		Body:     "on it",
	}
	require.NoError(t, store.Comments().Create(ctx, c))

	require.NoError(t, NewDeleteTask(store.Tasks()).Execute(ctx, DeleteTaskInput{Principal: owner, TaskID: res.Task.ID}))

	got, err := store.Tasks().GetByID(ctx, res.Task.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	gone, err := store.Comments().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "comments go with the task")
}
