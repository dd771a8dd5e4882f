package task

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
)

type CreateTaskInput struct {
	Owner       *domain.User
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

type CreateTaskResult struct {
	Task *domain.Task
}

type CreateTask struct {
	tasks ports.TaskRepository
}

func NewCreateTask(tasks ports.TaskRepository) *CreateTask {
	return &CreateTask{tasks: tasks}
}

func (uc *CreateTask) Execute(ctx context.Context, input CreateTaskInput) (*CreateTaskResult, error) {
	now := time.Now()
	start := now.Truncate(24 * time.Hour)
	if input.StartDate != nil {
		start = *input.StartDate
	}
	t := &domain.Task{
		ID:          domain.NewTaskID(uuid.New()),
		OwnerID:     input.Owner.ID,
		Title:       input.Title,
		Description: input.Description,
		StartDate:   start,
		EndDate:     input.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return &CreateTaskResult{Task: t}, nil
}
