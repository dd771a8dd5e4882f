package task

import (
	"context"

	"github.com/WojciechM98/Team-Management-System/internal/application/authz"
	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
)

type DeleteTaskInput struct {
	Principal *domain.User
	TaskID    domain.TaskID
}

type DeleteTask struct {
	tasks ports.TaskRepository
}

func NewDeleteTask(tasks ports.TaskRepository) *DeleteTask {
	return &DeleteTask{tasks: tasks}
}

// Execute removes the task with its comments and assignments. The cascade
// is explicit in the repository, one transaction, never an implicit
// side effect of foreign keys alone.
func (uc *DeleteTask) Execute(ctx context.Context, input DeleteTaskInput) error {
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
	return uc.tasks.Delete(ctx, input.TaskID)
}
