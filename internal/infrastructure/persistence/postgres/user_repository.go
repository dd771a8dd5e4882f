package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/persistence/db"
)

const (
	deleteCommentsOnOwnedTasksSQL    = `DELETE FROM comments WHERE task_id IN (SELECT id FROM tasks WHERE owner_id = $1)`
	deleteAssignmentsOnOwnedTasksSQL = `DELETE FROM task_assignments WHERE task_id IN (SELECT id FROM tasks WHERE owner_id = $1)`
	deleteAuthoredCommentsSQL        = `DELETE FROM comments WHERE author_id = $1`
	deleteOwnAssignmentsSQL          = `DELETE FROM task_assignments WHERE user_id = $1`
	deleteOwnedTasksSQL              = `DELETE FROM tasks WHERE owner_id = $1`
)

type UserRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewUserRepository(q *db.Queries, pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{q: q, pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.q.CreateUser(ctx, db.CreateUserParams{
		ID:           user.ID.UUID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := r.q.GetUserByID(ctx, id.UUID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	users, err := r.q.ListUsers(ctx, db.ListUsersParams{Limit: int32(limit), Offset: int32(offset)})
	if err != nil {
		return nil, err
	}
	list := make([]*domain.User, 0, len(users))
	for _, u := range users {
		list = append(list, dbUserToDomain(u))
	}
	return list, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.q.UpdateUser(ctx, db.UpdateUserParams{
		ID:        user.ID.UUID,
		Username:  user.Username,
		Email:     user.Email,
		UpdatedAt: user.UpdatedAt,
	})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id domain.UserID, passwordHash string) error {
	return r.q.UpdateUserPassword(ctx, id.UUID, passwordHash)
}

// Delete runs the cascade as one transaction: comments and assignments on
// owned tasks first, then the user's comments and assignments elsewhere,
// then the owned tasks, then the user row itself. The ordering keeps every
// intermediate state free of dangling references.
func (r *UserRepository) Delete(ctx context.Context, id domain.UserID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	for _, stmt := range []string{
		deleteCommentsOnOwnedTasksSQL,
		deleteAssignmentsOnOwnedTasksSQL,
		deleteAuthoredCommentsSQL,
		deleteOwnAssignmentsSQL,
		deleteOwnedTasksSQL,
	} {
		if _, err := tx.Exec(ctx, stmt, id.UUID); err != nil {
			return err
		}
	}
	if err := r.q.WithTx(tx).DeleteUser(ctx, id.UUID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func dbUserToDomain(u db.User) *domain.User {
	return &domain.User{
		ID:           domain.NewUserID(u.ID),
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)
