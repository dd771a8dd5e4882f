package auth

import (
	"context"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
)

type ChangePasswordInput struct {
	UserID          domain.UserID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword re-hashes with the hasher's current cost parameters, so a
// cost bump rolls out as users change passwords.
type ChangePassword struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewChangePassword(users ports.UserRepository, hasher ports.PasswordHasher) *ChangePassword {
	return &ChangePassword{users: users, hasher: hasher}
}

func (uc *ChangePassword) Execute(ctx context.Context, input ChangePasswordInput) error {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domerrors.ErrUserNotFound
	}
	if !uc.hasher.Verify(input.CurrentPassword, user.PasswordHash) {
		return domerrors.ErrInvalidCredentials
	}
	hash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, user.ID, hash)
}
