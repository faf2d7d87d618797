// Package user persists storefront accounts as Redis hashes with a
// key-value email index for login lookups and short-lived password
// reset tokens.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shirwani/chloe-nomura-home/internal/db"
	"github.com/shirwani/chloe-nomura-home/internal/domain"
	domuser "github.com/shirwani/chloe-nomura-home/internal/domain/user"
)

// store is the consumer interface for user accounts (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) error
}

// Repo implements the user repository consumed by the accounts service.
type Repo struct {
	store    store
	resetTTL time.Duration
}

// New creates a user repository. resetTTL bounds the life of password
// reset tokens.
func New(s store, resetTTL time.Duration) *Repo {
	return &Repo{store: s, resetTTL: resetTTL}
}

// Create stores a new account. The email address is claimed in a lookup
// index; a second registration with the same address fails with
// ErrUserExists.
func (r *Repo) Create(ctx context.Context, u domuser.User) error {
	idxKey := emailKey(u.Email())

	exists, err := r.store.Exists(ctx, idxKey)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", idxKey, err)
	}
	if exists {
		return domain.ErrUserExists
	}

	key := userKey(u.ID())
	if err := r.store.HSet(ctx, key, userToHash(u)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	if err := r.store.Set(ctx, idxKey, []byte(u.ID())); err != nil {
		return fmt.Errorf("set %s: %w", idxKey, err)
	}
	return nil
}

// Get returns an account by ID.
func (r *Repo) Get(ctx context.Context, id string) (domuser.User, error) {
	key := userKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domuser.User{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		// HGETALL on a missing key yields an empty map, not an error.
		return domuser.User{}, domain.ErrUserNotFound
	}
	return userFromHash(id, m), nil
}

// GetByEmail resolves an account through the email lookup index.
func (r *Repo) GetByEmail(ctx context.Context, email string) (domuser.User, error) {
	idxKey := emailKey(email)
	id, err := r.store.Get(ctx, idxKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domuser.User{}, domain.ErrUserNotFound
		}
		return domuser.User{}, fmt.Errorf("get %s: %w", idxKey, err)
	}
	return r.Get(ctx, string(id))
}

// UpdatePassword replaces only the stored password hash.
func (r *Repo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	key := userKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrUserNotFound
	}

	if err := r.store.HSet(ctx, key, map[string]string{"password_hash": passwordHash}); err != nil {
		return fmt.Errorf("hset password %s: %w", key, err)
	}
	return nil
}

// SaveResetToken maps a reset token to the account email for the reset TTL.
func (r *Repo) SaveResetToken(ctx context.Context, token, email string) error {
	if err := r.store.SetWithTTL(ctx, resetKey(token), []byte(email), r.resetTTL); err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken returns the email a token was issued for and deletes
// it, so a token authorizes exactly one password change. Unknown and
// expired tokens both surface as ErrResetTokenInvalid.
func (r *Repo) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	key := resetKey(token)
	v, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", domain.ErrResetTokenInvalid
		}
		return "", fmt.Errorf("get reset token: %w", err)
	}
	if err := r.store.Del(ctx, key); err != nil {
		return "", fmt.Errorf("del reset token: %w", err)
	}
	return string(v), nil
}

const userKeyPrefix = domain.KeyPrefix + "user:"

func userKey(id string) string {
	return userKeyPrefix + id
}

// emailKey normalizes the address so lookups are case-insensitive.
func emailKey(email string) string {
	return domain.KeyPrefix + "user_email:" + strings.ToLower(strings.TrimSpace(email))
}

func resetKey(token string) string {
	return domain.KeyPrefix + "reset_token:" + token
}
