package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/persistence/db"
)

type CommentRepository struct {
	q *db.Queries
}

func NewCommentRepository(q *db.Queries) *CommentRepository {
	return &CommentRepository{q: q}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.q.CreateComment(ctx, db.CreateCommentParams{
		ID:        comment.ID.UUID,
		TaskID:    comment.TaskID.UUID,
		AuthorID:  comment.AuthorID.UUID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	})
}

func (r *CommentRepository) GetByID(ctx context.Context, id domain.CommentID) (*domain.Comment, error) {
	c, err := r.q.GetCommentByID(ctx, id.UUID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbCommentToDomain(c), nil
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID domain.TaskID) ([]*domain.Comment, error) {
	comments, err := r.q.ListCommentsByTask(ctx, taskID.UUID)
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Comment, 0, len(comments))
	for _, c := range comments {
		list = append(list, dbCommentToDomain(c))
	}
	return list, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return r.q.UpdateComment(ctx, db.UpdateCommentParams{
		ID:        comment.ID.UUID,
		Body:      comment.Body,
		UpdatedAt: comment.UpdatedAt,
	})
}

func (r *CommentRepository) Delete(ctx context.Context, id domain.CommentID) error {
	return r.q.DeleteComment(ctx, id.UUID)
}

func dbCommentToDomain(c db.Comment) *domain.Comment {
	return &domain.Comment{
		ID:        domain.NewCommentID(c.ID),
		TaskID:    domain.NewTaskID(c.TaskID),
		AuthorID:  domain.NewUserID(c.AuthorID),
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Ensure CommentRepository implements ports.CommentRepository.
var _ ports.CommentRepository = (*CommentRepository)(nil)
