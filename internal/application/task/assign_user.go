package task

import (
	"context"

	"github.com/WojciechM98/Team-Management-System/internal/application/authz"
	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
)

type AssignUserInput struct {
	Principal *domain.User
	TaskID    domain.TaskID
	UserID    domain.UserID
}

type AssignUser struct {
	tasks    ports.TaskRepository
	users    ports.UserRepository
	enqueuer ports.TaskEnqueuer
}

func NewAssignUser(tasks ports.TaskRepository, users ports.UserRepository, enqueuer ports.TaskEnqueuer) *AssignUser {
	return &AssignUser{tasks: tasks, users: users, enqueuer: enqueuer}
}

// Execute adds a user to the task's assigned set. Re-assigning an already
// assigned user is a no-op success.
func (uc *AssignUser) Execute(ctx context.Context, input AssignUserInput) error {
	t, err := uc.tasks.GetByID(ctx, input.TaskID)
	if err != nil {
		return err
	}
	if t == nil {
		return domerrors.ErrTaskNotFound
	}
	if !authz.CanModifyTask(input.Principal, t) {
		return domerrors.ErrForbidden
	}
	assignee, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if assignee == nil {
		return domerrors.ErrUserNotFound
	}
	if t.IsAssigned(assignee.ID) {
		return nil
	}
	if err := uc.tasks.Assign(ctx, t.ID, assignee.ID); err != nil {
		return err
	}
	if uc.enqueuer != nil {
		// best effort; assignment already committed
		_ = uc.enqueuer.EnqueueTaskAssigned(ctx, t.ID.String(), t.Title, assignee.ID.String())
	}
	return nil
}

type UnassignUserInput struct {
	Principal *domain.User
	TaskID    domain.TaskID
	UserID    domain.UserID
}

type UnassignUser struct {
	tasks ports.TaskRepository
}

func NewUnassignUser(tasks ports.TaskRepository) *UnassignUser {
	return &UnassignUser{tasks: tasks}
}

func (uc *UnassignUser) Execute(ctx context.Context, input UnassignUserInput) error {
	t, err := uc.tasks.GetByID(ctx, input.TaskID)
	if err != nil {
		return err
	}
	if t == nil {
		return domerrors.ErrTaskNotFound
	}
	if !authz.CanModifyTask(input.Principal, t) {
		return domerrors.ErrForbidden
	}
	if !t.IsAssigned(input.UserID) {
		return domerrors.ErrUserNotFound
	}
	return uc.tasks.Unassign(ctx, t.ID, input.UserID)
}
