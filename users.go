package nomurahome

import (
	"context"
	"fmt"
	"time"
)

// UserService manages customer accounts.
type UserService struct {
	svc userUseCase
	obs *observer
}

// Register creates a customer account. The password is hashed before
// storage; a duplicate email surfaces as ErrUserExists.
func (s *UserService) Register(
	ctx context.Context,
	firstName, lastName, email, phone, password string,
) (u User, err error) {
	start := time.Now()
	defer func() { s.obs.observe("users.register", start, err) }()

	created, err := s.svc.Register(ctx, firstName, lastName, email, phone, password)
	if err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}
	return fromUser(created), nil
}

// RegisterWithType creates an account with an explicit account type
// (UserTypeCustomer or UserTypeAdmin). The embedded engine runs with
// full trust; HTTP registration always mints customers.
func (s *UserService) RegisterWithType(
	ctx context.Context,
	firstName, lastName, email, phone, password, userType string,
) (u User, err error) {
	start := time.Now()
	defer func() { s.obs.observe("users.register", start, err) }()

	created, err := s.svc.RegisterWithType(ctx, firstName, lastName, email, phone, password, userType)
	if err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}
	return fromUser(created), nil
}

// VerifyPassword checks a login attempt. Unknown emails and wrong
// passwords both surface as ErrInvalidCredentials.
func (s *UserService) VerifyPassword(ctx context.Context, email, password string) (u User, err error) {
	start := time.Now()
	defer func() { s.obs.observe("users.verify", start, err) }()

	found, err := s.svc.VerifyPassword(ctx, email, password)
	if err != nil {
		return User{}, fmt.Errorf("verify: %w", err)
	}
	return fromUser(found), nil
}

// Get returns an account by id.
func (s *UserService) Get(ctx context.Context, id string) (u User, err error) {
	start := time.Now()
	defer func() { s.obs.observe("users.get", start, err) }()

	found, err := s.svc.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return fromUser(found), nil
}

// RequestPasswordReset issues a single-use reset token for the account
// behind email. The token is returned to the caller for delivery.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (token string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("users.reset_request", start, err) }()

	token, err = s.svc.RequestPasswordReset(ctx, email)
	if err != nil {
		return "", fmt.Errorf("request password reset: %w", err)
	}
	return token, nil
}

// ResetPassword consumes a reset token and sets a new password. A
// reused, expired, or unknown token surfaces as ErrResetTokenInvalid.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("users.reset_confirm", start, err) }()

	if err = s.svc.ResetPassword(ctx, token, newPassword); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}
