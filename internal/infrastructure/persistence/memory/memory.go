// Package memory provides in-memory implementations of the repository
// ports. They back tests and local development without Postgres; semantics
// mirror the postgres package, including cascades on delete.
package memory

import (
	"context"
	"sync"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
)

// Store holds all three repositories over one shared dataset so cascade
// deletes can cross entity boundaries like the SQL transactions do.
type Store struct {
	mu          sync.RWMutex
	users       map[domain.UserID]*domain.User
	tasks       map[domain.TaskID]*domain.Task
	comments    map[domain.CommentID]*domain.Comment
	assignments map[domain.TaskID]map[domain.UserID]struct{}
}

func NewStore() *Store {
	return &Store{
		users:       make(map[domain.UserID]*domain.User),
		tasks:       make(map[domain.TaskID]*domain.Task),
		comments:    make(map[domain.CommentID]*domain.Comment),
		assignments: make(map[domain.TaskID]map[domain.UserID]struct{}),
	}
}

func (s *Store) Users() ports.UserRepository       { return (*userRepo)(s) }
func (s *Store) Tasks() ports.TaskRepository       { return (*taskRepo)(s) }
func (s *Store) Comments() ports.CommentRepository { return (*commentRepo)(s) }

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (s *Store) copyTask(t *domain.Task) *domain.Task {
	c := *t
	if t.EndDate != nil {
		d := *t.EndDate
		c.EndDate = &d
	}
	c.AssignedUserIDs = nil
	for uid := range s.assignments[t.ID] {
		c.AssignedUserIDs = append(c.AssignedUserIDs, uid)
	}
	return &c
}

func copyComment(c *domain.Comment) *domain.Comment {
	cp := *c
	return &cp
}

type userRepo Store

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, copyUser(u))
	}
	return paginate(all, limit, offset), nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		r.users[user.ID] = copyUser(user)
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id domain.UserID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

// Delete removes the user and everything hanging off them: owned tasks with
// their comments and assignments, the user's comments on other tasks, and
// the user's own assignments.
func (r *userRepo) Delete(ctx context.Context, id domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for tid, t := range r.tasks {
		if t.OwnerID == id {
			for cid, c := range r.comments {
				if c.TaskID == tid {
					delete(r.comments, cid)
				}
			}
			delete(r.assignments, tid)
			delete(r.tasks, tid)
		}
	}
	for cid, c := range r.comments {
		if c.AuthorID == id {
			delete(r.comments, cid)
		}
	}
	for _, set := range r.assignments {
		delete(set, id)
	}
	delete(r.users, id)
	return nil
}

type taskRepo Store

func (r *taskRepo) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = (*Store)(r).copyTask(task)
	return nil
}

func (r *taskRepo) GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	return (*Store)(r).copyTask(t), nil
}

func (r *taskRepo) List(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		all = append(all, (*Store)(r).copyTask(t))
	}
	return paginate(all, limit, offset), nil
}

func (r *taskRepo) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; ok {
		r.tasks[task.ID] = (*Store)(r).copyTask(task)
	}
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, id domain.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for cid, c := range r.comments {
		if c.TaskID == id {
			delete(r.comments, cid)
		}
	}
	delete(r.assignments, id)
	delete(r.tasks, id)
	return nil
}

func (r *taskRepo) Assign(ctx context.Context, taskID domain.TaskID, userID domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.assignments[taskID]
	if !ok {
		set = make(map[domain.UserID]struct{})
		r.assignments[taskID] = set
	}
	set[userID] = struct{}{}
	return nil
}

func (r *taskRepo) Unassign(ctx context.Context, taskID domain.TaskID, userID domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.assignments[taskID]; ok {
		delete(set, userID)
	}
	return nil
}

type commentRepo Store

func (r *commentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[comment.ID] = copyComment(comment)
	return nil
}

func (r *commentRepo) GetByID(ctx context.Context, id domain.CommentID) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	return copyComment(c), nil
}

func (r *commentRepo) ListByTask(ctx context.Context, taskID domain.TaskID) ([]*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.TaskID == taskID {
			out = append(out, copyComment(c))
		}
	}
	return out, nil
}

func (r *commentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[comment.ID]; ok {
		r.comments[comment.ID] = copyComment(comment)
	}
	return nil
}

func (r *commentRepo) Delete(ctx context.Context, id domain.CommentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	return nil
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

var (
	_ ports.UserRepository    = (*userRepo)(nil)
	_ ports.TaskRepository    = (*taskRepo)(nil)
	_ ports.CommentRepository = (*commentRepo)(nil)
)
