// Package authz holds the pure authorization predicates. They operate on
// already-loaded entities and do no I/O; callers decide the 403 mapping.
package authz

import "github.com/WojciechM98/Team-Management-System/internal/domain"

// CanModifyTask reports whether principal may update or delete the task,
// including managing its assignment set. Only the owner may.
func CanModifyTask(principal *domain.User, task *domain.Task) bool {
	return principal != nil && task != nil && principal.ID == task.OwnerID
}

// CanComment reports whether principal may add a comment to the task: the
// owner or any user in the task's assigned set, evaluated against the set
// as loaded for this request.
func CanComment(principal *domain.User, task *domain.Task) bool {
	if principal == nil || task == nil {
		return false
	}
	return principal.ID == task.OwnerID || task.IsAssigned(principal.ID)
}

// CanModifyComment reports whether principal may edit or delete the
// comment. Only its author may.
func CanModifyComment(principal *domain.User, comment *domain.Comment) bool {
	return principal != nil && comment != nil && principal.ID == comment.AuthorID
}

// CanModifyUser reports whether principal may update or delete the account.
// Accounts are self-managed.
func CanModifyUser(principal *domain.User, target *domain.User) bool {
	return principal != nil && target != nil && principal.ID == target.ID
}
