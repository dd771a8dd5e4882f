package user

import (
	"context"

	"github.com/WojciechM98/Team-Management-System/internal/application/authz"
	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
)

type DeleteUserInput struct {
	Principal *domain.User
	UserID    domain.UserID
}

type DeleteUser struct {
	users ports.UserRepository
}

func NewDeleteUser(users ports.UserRepository) *DeleteUser {
	return &DeleteUser{users: users}
}

// Execute deletes the account. Owned tasks go with it, along with their
// comments and assignments; the repository runs the whole cascade in one
// transaction.
func (uc *DeleteUser) Execute(ctx context.Context, input DeleteUserInput) error {
	u, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if u == nil {
		return domerrors.ErrUserNotFound
	}
	if !authz.CanModifyUser(input.Principal, u) {
		return domerrors.ErrForbidden
	}
	return uc.users.Delete(ctx, input.UserID)
}
