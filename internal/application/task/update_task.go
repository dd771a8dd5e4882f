package task

import (
	"context"
	"time"

	"github.com/WojciechM98/Team-Management-System/internal/application/authz"
	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
)

type UpdateTaskInput struct {
	Principal *domain.User
	TaskID    domain.TaskID
	Patch     domain.TaskPatch
}

type UpdateTaskResult struct {
	Task *domain.Task
}

type UpdateTask struct {
	tasks ports.TaskRepository
}

func NewUpdateTask(tasks ports.TaskRepository) *UpdateTask {
	return &UpdateTask{tasks: tasks}
}

// Execute checks existence before permission: a missing task is 404 for
// everyone, while an existing task owned by someone else is 403.
func (uc *UpdateTask) Execute(ctx context.Context, input UpdateTaskInput) (*UpdateTaskResult, error) {
	t, err := uc.tasks.GetByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	if !authz.CanModifyTask(input.Principal, t) {
		return nil, domerrors.ErrForbidden
	}
	if input.Patch.Apply(t) {
		t.UpdatedAt = time.Now()
		if err := uc.tasks.Update(ctx, t); err != nil {
			return nil, err
		}
	}
	return &UpdateTaskResult{Task: t}, nil
}
