package ports

import "context"

// TaskEnqueuer enqueues async notification jobs (assignment, comment).
type TaskEnqueuer interface {
	EnqueueTaskAssigned(ctx context.Context, taskID, taskTitle, assigneeID string) error
	EnqueueCommentAdded(ctx context.Context, taskID, commentID, authorID string) error
}
