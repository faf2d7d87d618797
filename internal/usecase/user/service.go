// Package user implements account management: registration, password
// verification, and the password reset flow. Sessions are left to the
// caller; this package never issues tokens beyond single-use reset ones.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	domuser "github.com/shirwani/chloe-nomura-home/internal/domain/user"
)

// Service manages storefront accounts.
type Service struct {
	repo Repository

	newID func() string
}

// New creates a user service.
func New(repo Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

// Register creates a customer account with a freshly minted id. The
// password is hashed by the domain before anything is stored; a
// duplicate email surfaces as ErrUserExists.
func (s *Service) Register(
	ctx context.Context,
	firstName, lastName, email, phone, password string,
) (domuser.User, error) {
	return s.RegisterWithType(ctx, firstName, lastName, email, phone, password, domuser.TypeCustomer)
}

// RegisterWithType creates an account with an explicit account type.
// Admin accounts are only minted here, never through the public
// registration endpoint.
func (s *Service) RegisterWithType(
	ctx context.Context,
	firstName, lastName, email, phone, password, userType string,
) (domuser.User, error) {
	u, err := domuser.New(s.newID(), firstName, lastName, email, phone, password, userType)
	if err != nil {
		return domuser.User{}, fmt.Errorf("register: %w", err)
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return domuser.User{}, fmt.Errorf("register %s: %w", u.Email(), err)
	}
	return u, nil
}

// VerifyPassword checks a login attempt. Unknown emails and wrong
// passwords both come back as ErrInvalidCredentials so the response
// never reveals whether an account exists.
func (s *Service) VerifyPassword(ctx context.Context, email, password string) (domuser.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domuser.User{}, domain.ErrInvalidCredentials
		}
		return domuser.User{}, fmt.Errorf("load account %s: %w", email, err)
	}
	if !u.VerifyPassword(password) {
		return domuser.User{}, domain.ErrInvalidCredentials
	}
	return u, nil
}

// Get returns an account by id.
func (s *Service) Get(ctx context.Context, id string) (domuser.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return domuser.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

// RequestPasswordReset mints a single-use reset token for the account and
// returns it to the caller. Delivering the token to the user (mail, SMS)
// is the caller's concern.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("request reset for %s: %w", email, err)
	}

	token := s.newID()
	if err := s.repo.SaveResetToken(ctx, token, u.Email()); err != nil {
		return "", fmt.Errorf("save reset token: %w", err)
	}
	return token, nil
}

// ResetPassword redeems a reset token and stores the new password hash.
// The token is consumed up front, so even a failed attempt burns it.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("new password is required")
	}

	email, err := s.repo.ConsumeResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("redeem reset token: %w", err)
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("load account %s: %w", email, err)
	}

	rehashed := u.WithPassword(newPassword)
	if err := s.repo.UpdatePassword(ctx, u.ID(), rehashed.PasswordHash()); err != nil {
		return fmt.Errorf("update password for %s: %w", u.ID(), err)
	}
	return nil
}
