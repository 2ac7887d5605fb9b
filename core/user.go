package core

import (
	"errors"
	"fmt"
)

type DBUser interface {
	ID() int
	Name() string
}

type UserDB interface {
	GetUser(id int) (DBUser, error)
	GetUserByName(name string) (DBUser, error)
	InsertUser(name string) (DBUser, error)
	LoginUser(name, password string) (DBUser, error)
	SearchUsers(substr string, limit int) ([]DBUser, error) // ordered by name
	SetPassword(u DBUser, password string) error
}

var ErrEmptyPassword = errors.New("refusing to set empty password")

// SetPassword shadows UserDB.SetPassword.
func (c *CoreDB) SetPassword(u DBUser, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	return c.UserDB.SetPassword(u, password)
}

// Permit shadows PermissionDB.InsertPermission.
func (c *CoreDB) Permit(u DBUser, perm Permission) error {
	if !perm.Valid() {
		return fmt.Errorf("unknown permission: %s", perm)
	}
	return c.PermissionDB.InsertPermission(u.ID(), perm)
}
