package user

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

func seedUser(t *testing.T, store *memory.Store, username string) *domain.User {
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

func TestUpdateUserSelfOnly(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	update := NewUpdateUser(store.Users())

	name := "alice2"
	_, err := update.Execute(ctx, UpdateUserInput{Principal: bob, UserID: alice.ID, Patch: domain.UserPatch{Username: &name}})
	assert.ErrorIs(t, err, domerrors.ErrForbidden)

	res, err := update.Execute(ctx, UpdateUserInput{Principal: alice, UserID: alice.ID, Patch: domain.UserPatch{Username: &name}})
	require.NoError(t, err)
	assert.Equal(t, "alice2", res.User.Username)
	assert.Equal(t, alice.ID, res.User.ID, "identity is immutable across renames")
}

func TestUpdateUserUniqueness(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	alice := seedUser(t, store, "alice")
	seedUser(t, store, "bob")
	update := NewUpdateUser(store.Users())

	taken := "bob"
	_, err := update.Execute(ctx, UpdateUserInput{Principal: alice, UserID: alice.ID, Patch: domain.UserPatch{Username: &taken}})
	assert.ErrorIs(t, err, domerrors.ErrUserExists)

	takenEmail := "bob@example.com"
	_, err = update.Execute(ctx, UpdateUserInput{Principal: alice, UserID: alice.ID, Patch: domain.UserPatch{Email: &takenEmail}})
	assert.ErrorIs(t, err, domerrors.ErrUserExists)

	// patching your own current values is a no-op, not a conflict
	own := "alice"
	res, err := update.Execute(ctx, UpdateUserInput{Principal: alice, UserID: alice.ID, Patch: domain.UserPatch{Username: &own}})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)
}

func TestUpdateMissingUser(t *testing.T) {
	store := memory.NewStore()
	alice := seedUser(t, store, "alice")
	name := "whoever"
	_, err := NewUpdateUser(store.Users()).Execute(context.Background(), UpdateUserInput{
		Principal: alice,
		UserID:    domain.NewUserID(uuid.New()),
		Patch:     domain.UserPatch{Username: &name},
	})
	assert.ErrorIs(t, err, domerrors.ErrUserNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	owned := &domain.Task{ID: domain.NewTaskID(uuid.New()), OwnerID: alice.ID, Title: "alice's task", StartDate: time.Now()}
	require.NoError(t, store.Tasks().Create(ctx, owned))
	require.NoError(t, store.Tasks().Assign(ctx, owned.ID, bob.ID))
	bobComment := &domain.Comment{ID: domain.NewCommentID(uuid.New()), TaskID: owned.ID, AuthorID: bob.ID, Body: "on alice's task"}
	require.NoError(t, store.Comments().Create(ctx, bobComment))

	other := &domain.Task{ID: domain.NewTaskID(uuid.New()), OwnerID: bob.ID, Title: "bob's task", StartDate: time.Now()}
	require.NoError(t, store.Tasks().Create(ctx, other))
	require.NoError(t, store.Tasks().Assign(ctx, other.ID, alice.ID))
	aliceComment := &domain.Comment{ID: domain.NewCommentID(uuid.New()), TaskID: other.ID, AuthorID: alice.ID, Body: "on bob's task"}
	require.NoError(t, store.Comments().Create(ctx, aliceComment))

	del := NewDeleteUser(store.Users())
	err := del.Execute(ctx, DeleteUserInput{Principal: bob, UserID: alice.ID})
	assert.ErrorIs(t, err, domerrors.ErrForbidden, "only self-delete")

	require.NoError(t, del.Execute(ctx, DeleteUserInput{Principal: alice, UserID: alice.ID}))

	gone, err := store.Users().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	ownedGone, err := store.Tasks().GetByID(ctx, owned.ID)
	require.NoError(t, err)
	assert.Nil(t, ownedGone, "owned task deleted")

	bobCommentGone, err := store.Comments().GetByID(ctx, bobComment.ID)
	require.NoError(t, err)
	assert.Nil(t, bobCommentGone, "others' comments on the owned task deleted")

	aliceCommentGone, err := store.Comments().GetByID(ctx, aliceComment.ID)
	require.NoError(t, err)
	assert.Nil(t, aliceCommentGone, "alice's comments elsewhere deleted")

	survivor, err := store.Tasks().GetByID(ctx, other.ID)
	require.NoError(t, err)
	require.NotNil(t, survivor, "bob's task survives")
	assert.False(t, survivor.IsAssigned(alice.ID), "alice's assignment removed")
}
