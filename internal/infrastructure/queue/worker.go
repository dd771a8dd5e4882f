package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// taskAssignedPayload matches the JSON enqueued by TaskEnqueuer.EnqueueTaskAssigned.
type taskAssignedPayload struct {
	TaskID     string `json:"task_id"`
	TaskTitle  string `json:"task_title"`
	AssigneeID string `json:"assignee_id"`
}

// commentAddedPayload matches the JSON enqueued by TaskEnqueuer.EnqueueCommentAdded.
type commentAddedPayload struct {
	TaskID    string `json:"task_id"`
	CommentID string `json:"comment_id"`
	AuthorID  string `json:"author_id"`
}

// Worker runs Asynq task handlers for notification jobs.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, log: log}
	mux.HandleFunc(TypeNotifyTaskAssigned, w.handleTaskAssigned)
	mux.HandleFunc(TypeNotifyCommentAdded, w.handleCommentAdded)
	return w
}

func (w *Worker) handleTaskAssigned(ctx context.Context, t *asynq.Task) error {
	var p taskAssignedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("task assigned payload invalid")
		return err
	}
	// Dev: log the notification; production would deliver email/push.
	w.log.Info().
		Str("task_id", p.TaskID).
		Str("task_title", p.TaskTitle).
		Str("assignee_id", p.AssigneeID).
		Msg("task assigned notification (log only; configure delivery for real notifications)")
	return nil
}

func (w *Worker) handleCommentAdded(ctx context.Context, t *asynq.Task) error {
	var p commentAddedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("comment added payload invalid")
		return err
	}
	w.log.Info().
		Str("task_id", p.TaskID).
		Str("comment_id", p.CommentID).
		Str("author_id", p.AuthorID).
		Msg("comment added notification (log only; configure delivery for real notifications)")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
