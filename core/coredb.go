package core

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

type CoreDB struct {
	ContentTypeDB
	GrantDB
	NodeDB
	PermissionDB
	UserDB
	SessionManager *scs.SessionManager
}

func (c *CoreDB) Init(sessionStore scs.Store, cookiePath string) {
	c.SessionManager = scs.New()
	c.SessionManager.Store = sessionStore
	c.SessionManager.Cookie.Path = cookiePath + "/"         // 'The default value is "/". Passing the empty string "" will result in it being set to the path that the cookie was issued from.'
	c.SessionManager.Cookie.Persist = false                 // Don't store cookie across browser sessions.
	c.SessionManager.Cookie.SameSite = http.SameSiteLaxMode // CSRF protection for POST, the removal link is GET though
	c.SessionManager.Cookie.Secure = false                  // else running on localhost or behind a http proxy fails
	c.SessionManager.IdleTimeout = 12 * time.Hour
	c.SessionManager.Lifetime = 720 * time.Hour
}

// GetPermissionsOf returns the permissions of a user. A nil user has no permissions.
func (c *CoreDB) GetPermissionsOf(u DBUser) (PermissionSet, error) {
	if u == nil {
		return PermissionSet{}, nil
	}
	return c.PermissionDB.GetPermissions(u.ID())
}
