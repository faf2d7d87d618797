package user

import (
	"context"
	"strings"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	domuser "github.com/shirwani/chloe-nomura-home/internal/domain/user"
)

// mockRepo is an in-memory Repository fake mirroring the real repo's
// email normalization.
type mockRepo struct {
	users   map[string]domuser.User
	byEmail map[string]string
	tokens  map[string]string

	createErr error
	saveErr   error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		users:   make(map[string]domuser.User),
		byEmail: make(map[string]string),
		tokens:  make(map[string]string),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (m *mockRepo) seed(u domuser.User) {
	m.users[u.ID()] = u
	m.byEmail[normalizeEmail(u.Email())] = u.ID()
}

func (m *mockRepo) Create(_ context.Context, u domuser.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byEmail[normalizeEmail(u.Email())]; ok {
		return domain.ErrUserExists
	}
	m.seed(u)
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domuser.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domuser.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (domuser.User, error) {
	id, ok := m.byEmail[normalizeEmail(email)]
	if !ok {
		return domuser.User{}, domain.ErrUserNotFound
	}
	return m.Get(ctx, id)
}

func (m *mockRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	m.users[id] = domuser.Reconstruct(
		u.ID(), u.FirstName(), u.LastName(), u.Email(), u.Phone(),
		passwordHash, u.UserType(), u.CreatedAt(),
	)
	return nil
}

func (m *mockRepo) SaveResetToken(_ context.Context, token, email string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tokens[token] = email
	return nil
}

func (m *mockRepo) ConsumeResetToken(_ context.Context, token string) (string, error) {
	email, ok := m.tokens[token]
	if !ok {
		return "", domain.ErrResetTokenInvalid
	}
	delete(m.tokens, token)
	return email, nil
}

func fixedID(id string) func() string {
	return func() string { return id }
}
