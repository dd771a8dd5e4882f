package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/persistence/db"
)

const (
	deleteTaskCommentsSQL    = `DELETE FROM comments WHERE task_id = $1`
	deleteTaskAssignmentsSQL = `DELETE FROM task_assignments WHERE task_id = $1`
)

type TaskRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewTaskRepository(q *db.Queries, pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{q: q, pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.q.CreateTask(ctx, db.CreateTaskParams{
		ID:          task.ID.UUID,
		OwnerID:     task.OwnerID.UUID,
		Title:       task.Title,
		Description: task.Description,
		StartDate:   task.StartDate,
		EndDate:     endDateToDB(task.EndDate),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	})
}

// GetByID loads the task together with its assigned-user set; permission
// checks must see the set as of this request.
func (r *TaskRepository) GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	t, err := r.q.GetTaskByID(ctx, id.UUID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	assignees, err := r.q.ListTaskAssignees(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return dbTaskToDomain(t, assignees), nil
}

func (r *TaskRepository) List(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
	tasks, err := r.q.ListTasks(ctx, db.ListTasksParams{Limit: int32(limit), Offset: int32(offset)})
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		assignees, err := r.q.ListTaskAssignees(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		list = append(list, dbTaskToDomain(t, assignees))
	}
	return list, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return r.q.UpdateTask(ctx, db.UpdateTaskParams{
		ID:          task.ID.UUID,
		Title:       task.Title,
		Description: task.Description,
		StartDate:   task.StartDate,
		EndDate:     endDateToDB(task.EndDate),
		UpdatedAt:   task.UpdatedAt,
	})
}

// Delete removes the task, its comments and its assignments in one
// transaction.
func (r *TaskRepository) Delete(ctx context.Context, id domain.TaskID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, deleteTaskCommentsSQL, id.UUID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, deleteTaskAssignmentsSQL, id.UUID); err != nil {
		return err
	}
	if err := r.q.WithTx(tx).DeleteTask(ctx, id.UUID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *TaskRepository) Assign(ctx context.Context, taskID domain.TaskID, userID domain.UserID) error {
	return r.q.CreateTaskAssignment(ctx, taskID.UUID, userID.UUID)
}

func (r *TaskRepository) Unassign(ctx context.Context, taskID domain.TaskID, userID domain.UserID) error {
	return r.q.DeleteTaskAssignment(ctx, taskID.UUID, userID.UUID)
}

func endDateToDB(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func dbTaskToDomain(t db.Task, assignees []uuid.UUID) *domain.Task {
	var endDate *time.Time
	if t.EndDate.Valid {
		d := t.EndDate.Time
		endDate = &d
	}
	ids := make([]domain.UserID, 0, len(assignees))
	for _, a := range assignees {
		ids = append(ids, domain.NewUserID(a))
	}
	return &domain.Task{
		ID:              domain.NewTaskID(t.ID),
		OwnerID:         domain.NewUserID(t.OwnerID),
		Title:           t.Title,
		Description:     t.Description,
		StartDate:       t.StartDate,
		EndDate:         endDate,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		AssignedUserIDs: ids,
	}
}

// Ensure TaskRepository implements ports.TaskRepository.
var _ ports.TaskRepository = (*TaskRepository)(nil)
