package user

import (
	"context"
	"time"

	"github.com/WojciechM98/Team-Management-System/internal/application/authz"
	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
)

type UpdateUserInput struct {
	Principal *domain.User
	UserID    domain.UserID
	Patch     domain.UserPatch
}

type UpdateUserResult struct {
	User *domain.User
}

type UpdateUser struct {
	users ports.UserRepository
}

func NewUpdateUser(users ports.UserRepository) *UpdateUser {
	return &UpdateUser{users: users}
}

func (uc *UpdateUser) Execute(ctx context.Context, input UpdateUserInput) (*UpdateUserResult, error) {
	u, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if !authz.CanModifyUser(input.Principal, u) {
		return nil, domerrors.ErrForbidden
	}
	if input.Patch.Email != nil {
		existing, err := uc.users.GetByEmail(ctx, *input.Patch.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != u.ID {
			return nil, domerrors.ErrUserExists
		}
	}
	if input.Patch.Username != nil {
		existing, err := uc.users.GetByUsername(ctx, *input.Patch.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != u.ID {
			return nil, domerrors.ErrUserExists
		}
	}
	if input.Patch.Apply(u) {
		u.UpdatedAt = time.Now()
		if err := uc.users.Update(ctx, u); err != nil {
			return nil, err
		}
	}
	return &UpdateUserResult{User: u}, nil
}
