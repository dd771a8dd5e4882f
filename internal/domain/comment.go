package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentID is a value object for comment identity.
type CommentID struct{ uuid.UUID }

// NewCommentID creates a new CommentID from uuid.
func NewCommentID(id uuid.UUID) CommentID { return CommentID{UUID: id} }

// ParseCommentID parses the canonical string form.
func ParseCommentID(s string) (CommentID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CommentID{}, err
	}
	return CommentID{UUID: id}, nil
}

// String returns the canonical string form.
func (c CommentID) String() string { return c.UUID.String() }

// Comment belongs to a task and records its author.
type Comment struct {
	ID        CommentID
	TaskID    TaskID
	AuthorID  UserID
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentPatch is an explicit partial update for comments.
type CommentPatch struct {
	Body *string
}

// Apply merges the patch onto c and reports whether anything changed.
func (p CommentPatch) Apply(c *Comment) bool {
	if p.Body != nil && *p.Body != c.Body {
		c.Body = *p.Body
		return true
	}
	return false
}
