package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskID is a value object for task identity.
type TaskID struct{ uuid.UUID }

// NewTaskID creates a new TaskID from uuid.
func NewTaskID(id uuid.UUID) TaskID { return TaskID{UUID: id} }

// ParseTaskID parses the canonical string form.
func ParseTaskID(s string) (TaskID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TaskID{}, err
	}
	return TaskID{UUID: id}, nil
}

// String returns the canonical string form.
func (t TaskID) String() string { return t.UUID.String() }

// Task is a unit of work owned by exactly one user. AssignedUserIDs is the
// set of users the owner assigned; it is loaded fresh with the task because
// comment permissions depend on it.
type Task struct {
	ID              TaskID
	OwnerID         UserID
	Title           string
	Description     string
	StartDate       time.Time
	EndDate         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	AssignedUserIDs []UserID
}

// IsAssigned reports whether id is in the task's assigned-user set.
func (t *Task) IsAssigned(id UserID) bool {
	for _, a := range t.AssignedUserIDs {
		if a == id {
			return true
		}
	}
	return false
}

// TaskPatch is an explicit partial update for tasks. Only non-nil fields
// are merged onto the stored task.
type TaskPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Apply merges the patch onto t and reports whether anything changed.
func (p TaskPatch) Apply(t *Task) bool {
	changed := false
	if p.Title != nil && *p.Title != t.Title {
		t.Title = *p.Title
		changed = true
	}
	if p.Description != nil && *p.Description != t.Description {
		t.Description = *p.Description
		changed = true
	}
	if p.StartDate != nil && !p.StartDate.Equal(t.StartDate) {
		t.StartDate = *p.StartDate
		changed = true
	}
	if p.EndDate != nil && (t.EndDate == nil || !p.EndDate.Equal(*t.EndDate)) {
		d := *p.EndDate
		t.EndDate = &d
		changed = true
	}
	return changed
}
