package ports

import (
	"context"

	"github.com/WojciechM98/Team-Management-System/internal/domain"
)

// UserRepository defines persistence for users. Lookups return (nil, nil)
// when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id domain.UserID, passwordHash string) error
	// Delete removes the user together with owned tasks, their comments and
	// assignments, and the user's comments on other tasks, in one transaction.
	Delete(ctx context.Context, id domain.UserID) error
}

// TaskRepository defines persistence for tasks. Reads load the assigned-user
// set with the task; permission checks need it fresh per request.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	// Delete removes the task, its comments and its assignments in one
	// transaction.
	Delete(ctx context.Context, id domain.TaskID) error
	Assign(ctx context.Context, taskID domain.TaskID, userID domain.UserID) error
	Unassign(ctx context.Context, taskID domain.TaskID, userID domain.UserID) error
}

// CommentRepository defines persistence for task comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id domain.CommentID) (*domain.Comment, error)
	ListByTask(ctx context.Context, taskID domain.TaskID) ([]*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id domain.CommentID) error
}
