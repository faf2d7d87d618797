package user

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account types stored in the usertype field.
const (
	TypeCustomer = "customer"
	TypeAdmin    = "admin"
)

// User is a storefront account (immutable value object). Only the salted
// password hash is ever stored.
type User struct {
	id           string
	firstName    string
	lastName     string
	email        string
	phone        string
	passwordHash string
	userType     string
	createdAt    int64
}

// New validates and creates a User, hashing the given plain password.
func New(id, firstName, lastName, email, phone, password, userType string) (User, error) {
	if id == "" {
		return User{}, fmt.Errorf("user id is required")
	}
	if email == "" {
		return User{}, fmt.Errorf("email is required")
	}
	if password == "" {
		return User{}, fmt.Errorf("password is required")
	}
	if userType == "" {
		userType = TypeCustomer
	}

	return User{
		id:           id,
		firstName:    firstName,
		lastName:     lastName,
		email:        email,
		phone:        phone,
		passwordHash: HashPassword(email, phone, password),
		userType:     userType,
		createdAt:    time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates a User without validation (storage hydration).
func Reconstruct(
	id, firstName, lastName, email, phone, passwordHash, userType string,
	createdAt int64,
) User {
	return User{
		id:           id,
		firstName:    firstName,
		lastName:     lastName,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		userType:     userType,
		createdAt:    createdAt,
	}
}

// ID returns the account identifier.
func (u User) ID() string { return u.id }

// FirstName returns the first name.
func (u User) FirstName() string { return u.firstName }

// LastName returns the last name.
func (u User) LastName() string { return u.lastName }

// Email returns the account email.
func (u User) Email() string { return u.email }

// Phone returns the phone number.
func (u User) Phone() string { return u.phone }

// PasswordHash returns the stored salted hash.
func (u User) PasswordHash() string { return u.passwordHash }

// UserType returns the account type (customer or admin).
func (u User) UserType() string { return u.userType }

// CreatedAt returns the account creation time, unix milliseconds.
func (u User) CreatedAt() int64 { return u.createdAt }

// VerifyPassword recomputes the salted hash for the candidate password and
// compares it against the stored one in constant time.
func (u User) VerifyPassword(password string) bool {
	candidate := HashPassword(u.email, u.phone, password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(u.passwordHash)) == 1
}

// WithPassword returns a copy with the password hash replaced.
func (u User) WithPassword(password string) User {
	c := u
	c.passwordHash = HashPassword(u.email, u.phone, password)
	return c
}

// HashPassword derives a deterministic per-account salt as a UUIDv5 of the
// normalized email+phone in the DNS namespace, then returns the hex SHA-256
// of password concatenated with the salt's dashless hex form. The salt
// construction is fixed; changing it invalidates every stored hash.
func HashPassword(email, phone, password string) string {
	base := strings.ToLower(strings.TrimSpace(email)) + strings.TrimSpace(phone)
	if base == "" {
		base = "anonymous"
	}
	salt := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(base))
	sum := sha256.Sum256([]byte(password + hex.EncodeToString(salt[:])))
	return hex.EncodeToString(sum[:])
}
