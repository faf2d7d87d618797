package user

import (
	"strconv"

	domuser "github.com/shirwani/chloe-nomura-home/internal/domain/user"
)

func userToHash(u domuser.User) map[string]string {
	return map[string]string{
		"firstname":     u.FirstName(),
		"lastname":      u.LastName(),
		"email":         u.Email(),
		"phone":         u.Phone(),
		"password_hash": u.PasswordHash(),
		"usertype":      u.UserType(),
		"created_at":    strconv.FormatInt(u.CreatedAt(), 10),
	}
}

func userFromHash(id string, m map[string]string) domuser.User {
	createdAt, _ := strconv.ParseInt(m["created_at"], 10, 64)
	return domuser.Reconstruct(
		id,
		m["firstname"],
		m["lastname"],
		m["email"],
		m["phone"],
		m["password_hash"],
		m["usertype"],
		createdAt,
	)
}
