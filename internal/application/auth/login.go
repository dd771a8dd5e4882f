package auth

import (
	"context"
	"strings"
	"time"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/domain"
	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
)

// DefaultAccessTokenTTL applies when the configured TTL is missing or
// non-positive.
const DefaultAccessTokenTTL = 15 * time.Minute

type LoginInput struct {
	// UsernameOrEmail accepts either identifier; values containing '@' are
	// resolved as email first.
	UsernameOrEmail string
	Password        string
}

type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // seconds
	User        *domain.User
}

type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	ttl    time.Duration
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, ttl time.Duration) *Login {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &Login{users: users, hasher: hasher, issuer: issuer, ttl: ttl}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.lookup(ctx, input.UsernameOrEmail)
	if err != nil {
		return nil, err
	}
	// a single failure path for unknown account and wrong password keeps
	// the response from acting as an account-existence oracle
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.Issue(user.ID.String(), uc.ttl)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(uc.ttl / time.Second),
		User:        user,
	}, nil
}

func (uc *Login) lookup(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	identifier := strings.TrimSpace(usernameOrEmail)
	if strings.Contains(identifier, "@") {
		// emails are stored lowercased at signup, so the login identifier
		// must be folded the same way or a mixed-case signup locks itself out
		user, err := uc.users.GetByEmail(ctx, strings.ToLower(identifier))
		if err != nil || user != nil {
			return user, err
		}
	}
	return uc.users.GetByUsername(ctx, identifier)
}
