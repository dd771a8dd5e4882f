package comment

import (
	"context"
	"time"

	"github.com/WojciechM98/Team-Management-System/internal/application/authz"
	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
)

type UpdateCommentInput struct {
	Principal *domain.User
	CommentID domain.CommentID
	Patch     domain.CommentPatch
}

type UpdateCommentResult struct {
	Comment *domain.Comment
}

type UpdateComment struct {
	comments ports.CommentRepository
}

func NewUpdateComment(comments ports.CommentRepository) *UpdateComment {
	return &UpdateComment{comments: comments}
}

func (uc *UpdateComment) Execute(ctx context.Context, input UpdateCommentInput) (*UpdateCommentResult, error) {
	c, err := uc.comments.GetByID(ctx, input.CommentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domerrors.ErrCommentNotFound
	}
	if !authz.CanModifyComment(input.Principal, c) {
		return nil, domerrors.ErrForbidden
	}
	if input.Patch.Apply(c) {
		c.UpdatedAt = time.Now()
		if err := uc.comments.Update(ctx, c); err != nil {
			return nil, err
		}
	}
	return &UpdateCommentResult{Comment: c}, nil
}
