package user

import (
	"context"

	domuser "github.com/shirwani/chloe-nomura-home/internal/domain/user"
)

// Repository is the persistence contract for accounts and reset tokens.
type Repository interface {
	Create(ctx context.Context, u domuser.User) error
	Get(ctx context.Context, id string) (domuser.User, error)
	GetByEmail(ctx context.Context, email string) (domuser.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SaveResetToken(ctx context.Context, token, email string) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}
