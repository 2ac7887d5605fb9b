package core

import (
	"encoding/gob"
	"html/template"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Notification struct {
	Message string
	Style   string
}

func init() {
	gob.Register([]Notification{}) // required for storing Notifications in a session
}

// A Request is created by CoreDB.NewRequest.
type Request struct {
	db          *CoreDB // unexported, so it can't be accessed in templates
	User        DBUser
	Permissions PermissionSet

	// http
	writer  http.ResponseWriter
	request *http.Request

	// robustness
	statusWritten bool

	printer *message.Printer
}

// NewRequest creates a Request with the given http.ResponseWriter and http.Request.
// If a user is logged in, it sets Request.User and Request.Permissions.
func (c *CoreDB) NewRequest(w http.ResponseWriter, httpreq *http.Request) *Request {

	var req = &Request{
		db:          c,
		Permissions: PermissionSet{},
		writer:      w,
		request:     httpreq,
	}

	tag, _ := language.MatchStrings(langMatcher, httpreq.Header.Get("Accept-Language"))
	req.printer = message.NewPrinter(tag)

	if uid := c.SessionManager.GetInt(httpreq.Context(), "uid"); uid != 0 {
		u, err := c.UserDB.GetUser(uid)
		if u != nil && err == nil {
			req.User = u
			// on error, the user has no permissions
			if perms, err := c.GetPermissionsOf(u); err == nil {
				req.Permissions = perms
			}
		}
		// ignore errors
	}

	return req
}

// Danger adds a "danger" notification to the session.
func (req *Request) Danger(err error) {
	req.addNotification(err.Error(), "danger")
}

// Success adds a translated "success" notification to the session.
func (req *Request) Success(key string, args ...interface{}) {
	req.addNotification(req.printer.Sprintf(key, args...), "success")
}

// style should be a bootstrap alert style without the leading "alert-"
func (req *Request) addNotification(message, style string) {
	notifications, _ := req.db.SessionManager.Get(req.request.Context(), "notifications").([]Notification)
	notifications = append(notifications, Notification{message, style})
	req.db.SessionManager.Put(req.request.Context(), "notifications", notifications)
}

// RenderNotifications removes all notifications from the session
// and renders them into an HTML string.
// If the HTTP status had already been written, it does nothing.
func (req *Request) RenderNotifications() template.HTML {
	var r string
	if !req.statusWritten {
		notifications, _ := req.db.SessionManager.Pop(req.request.Context(), "notifications").([]Notification)
		for _, n := range notifications {
			r += `<div class="alert alert-` + n.Style + ` mt-3" role="alert">` + template.HTMLEscapeString(n.Message) + `</div>`
		}
	}
	return template.HTML(r)
}

// Cleanup destroys the session (which means re-setting the cookie with zero lifetime) if the session has been modified and is empty now.
func (req *Request) Cleanup() {
	sessMan := req.db.SessionManager
	if sessMan.Status(req.request.Context()) == scs.Modified && len(sessMan.Keys(req.request.Context())) == 0 {
		_ = sessMan.Destroy(req.request.Context())
	}
}

// SeeOther redirects to the given URL.
func (req *Request) SeeOther(url string) {
	if req.statusWritten {
		return
	}
	http.Redirect(req.writer, req.request, url, http.StatusSeeOther)
	req.statusWritten = true
}

// StatusWritten returns whether SeeOther has been called.
func (req *Request) StatusWritten() bool {
	return req.statusWritten
}

// Login tries to log in a user. On success, the user id is stored in the session.
func (req *Request) Login(name string, enteredPass string) error {
	if req.LoggedIn() {
		return nil
	}
	u, err := req.db.UserDB.LoginUser(name, enteredPass)
	if err != nil {
		return err // ErrAuth if name or enteredPass is wrong
	}
	if err := req.db.SessionManager.RenewToken(req.request.Context()); err != nil {
		return err
	}
	req.User = u
	if req.Permissions, err = req.db.GetPermissionsOf(u); err != nil {
		req.Permissions = PermissionSet{}
	}
	req.Success(MsgWelcome, u.Name())
	req.db.SessionManager.Put(req.request.Context(), "uid", u.ID())
	return nil
}

func (req *Request) LoggedIn() bool {
	return req.User != nil
}

// Logout removes the user id from the session and calls req.Cleanup().
func (req *Request) Logout() {
	if req.LoggedIn() {
		req.db.SessionManager.Remove(req.request.Context(), "uid")
		req.User = nil
		req.Permissions = PermissionSet{}
	}
	req.Cleanup()
}

// Can returns whether the user holds the given permission. Templates use it.
func (req *Request) Can(perm string) bool {
	return req.Permissions.Has(Permission(perm))
}
