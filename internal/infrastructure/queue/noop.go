package queue

import (
	"context"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueTaskAssigned(ctx context.Context, taskID, taskTitle, assigneeID string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueCommentAdded(ctx context.Context, taskID, commentID, authorID string) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
