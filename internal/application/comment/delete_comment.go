package comment

import (
	"context"

	"github.com/WojciechM98/Team-Management-System/internal/application/authz"
	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
)

type DeleteCommentInput struct {
	Principal *domain.User
	CommentID domain.CommentID
}

type DeleteComment struct {
	comments ports.CommentRepository
}

func NewDeleteComment(comments ports.CommentRepository) *DeleteComment {
	return &DeleteComment{comments: comments}
}

func (uc *DeleteComment) Execute(ctx context.Context, input DeleteCommentInput) error {
	c, err := uc.comments.GetByID(ctx, input.CommentID)
	if err != nil {
		return err
	}
	if c == nil {
		return domerrors.ErrCommentNotFound
	}
	if !authz.CanModifyComment(input.Principal, c) {
		return domerrors.ErrForbidden
	}
	return uc.comments.Delete(ctx, input.CommentID)
}
