package comment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/WojciechM98/Team-Management-System/internal/application/authz"
	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
)

type AddCommentInput struct {
	Principal *domain.User
	TaskID    domain.TaskID
	Body      string
}

type AddCommentResult struct {
	Comment *domain.Comment
}

type AddComment struct {
	tasks    ports.TaskRepository
	comments ports.CommentRepository
	enqueuer ports.TaskEnqueuer
}

func NewAddComment(tasks ports.TaskRepository, comments ports.CommentRepository, enqueuer ports.TaskEnqueuer) *AddComment {
	return &AddComment{tasks: tasks, comments: comments, enqueuer: enqueuer}
}

// Execute creates a comment on the task. The assignment set is read fresh
// with the task, so a user unassigned since their last request loses the
// permission immediately.
func (uc *AddComment) Execute(ctx context.Context, input AddCommentInput) (*AddCommentResult, error) {
	t, err := uc.tasks.GetByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	if !authz.CanComment(input.Principal, t) {
		return nil, domerrors.ErrForbidden
	}
	now := time.Now()
	c := &domain.Comment{
		ID:        domain.NewCommentID(uuid.New()),
		TaskID:    t.ID,
		AuthorID:  input.Principal.ID,
		Body:      input.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	if uc.enqueuer != nil {
		_ = uc.enqueuer.EnqueueCommentAdded(ctx, t.ID.String(), c.ID.String(), c.AuthorID.String())
	}
	return &AddCommentResult{Comment: c}, nil
}
