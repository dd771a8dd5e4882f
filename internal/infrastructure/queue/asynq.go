package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
)

const (
	TypeNotifyTaskAssigned = "notify:task_assigned"
	TypeNotifyCommentAdded = "notify:comment_added"
)

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueTaskAssigned(ctx context.Context, taskID, taskTitle, assigneeID string) error {
	payload, _ := json.Marshal(map[string]string{
		"task_id":     taskID,
		"task_title":  taskTitle,
		"assignee_id": assigneeID,
	})
	task := asynq.NewTask(TypeNotifyTaskAssigned, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("task_id", taskID).Msg("enqueue task assigned notification failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueCommentAdded(ctx context.Context, taskID, commentID, authorID string) error {
	payload, _ := json.Marshal(map[string]string{
		"task_id":    taskID,
		"comment_id": commentID,
		"author_id":  authorID,
	})
	task := asynq.NewTask(TypeNotifyCommentAdded, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("task_id", taskID).Msg("enqueue comment added notification failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
