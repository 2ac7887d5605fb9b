package backend

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/nodeaccess/core"
)

var ErrBadRequest = errors.New("bad request")

// we need the CoreDB in the backend
type context struct {
	*core.Request
	Prefix string // with trailing slash
	db     *core.CoreDB
}

type handle func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error

func statusOf(err error) int {
	switch {
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func middleware(db *core.CoreDB, prefix string, requireLoggedIn bool, f handle) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var ctx = &context{
			Prefix:  prefix + "/",
			Request: db.NewRequest(w, req),
			db:      db,
		}
		defer ctx.Cleanup()

		if requireLoggedIn && !ctx.LoggedIn() {
			ctx.SeeOther("/login")
			return
		}

		err := f(w, req, ctx, params)
		if err == nil || ctx.StatusWritten() {
			return
		}

		var status = statusOf(err)
		if status == http.StatusForbidden {
			err = core.ErrForbidden // don't reveal why
		}
		if status == http.StatusInternalServerError {
			log.Printf("error serving %s %s: %v", req.Method, req.URL.Path, err)
		}

		// probably no template has been executed, so execute error template
		w.WriteHeader(status)
		errorTmpl.Execute(w, struct {
			*context
			Err error
		}{
			context: ctx,
			Err:     err,
		})
	}
}

// grantTab wraps a handle, so it is only called if the user may access the grant tab of the node with the id parameter.
func grantTab(f handle) handle {
	return func(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {
		if err := ctx.db.RequireGrantTab(params.ByName("id"), ctx.Permissions); err != nil {
			return err
		}
		return f(w, req, ctx, params)
	}
}

// requirePermission wraps a handle, so it is only called if the user holds perm.
func requirePermission(perm core.Permission, f handle) handle {
	return func(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {
		if err := core.RequirePermission(ctx.Permissions, perm); err != nil {
			return err
		}
		return f(w, req, ctx, params)
	}
}

var errorTmpl = tmpl(`
	<div class="alert alert-danger" role="alert">
		{{ .Err }}
	</div>`)

// NewBackendRouter returns the router. The prefix is used for the base href only, redirects are relative to the root of the router.
func NewBackendRouter(db *core.CoreDB, prefix string) http.Handler {

	var router = httprouter.New()

	var GETAndPOST = func(path string, h httprouter.Handle) {
		router.GET(path, h)
		router.POST(path, h)
	}

	// public
	router.GET("/", middleware(db, prefix, false, root))
	GETAndPOST("/login", middleware(db, prefix, false, login))

	// private
	router.GET("/content/:id/edit", middleware(db, prefix, true, edit))
	router.GET("/content/:id/grants", middleware(db, prefix, true, grantTab(grants)))
	router.POST("/content/:id/grants", middleware(db, prefix, true, grantTab(requirePermission(core.GrantUpdate, addGrant))))
	GETAndPOST("/content/:id/grants/remove/:uid", middleware(db, prefix, true, grantTab(requirePermission(core.GrantDelete, removeUser))))
	router.GET("/logout", middleware(db, prefix, true, logout))
	router.GET("/user-autocomplete", middleware(db, prefix, true, autocomplete))

	return router
}

func tmpl(text string) *template.Template {
	t := template.Must(backendTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

var backendTmpl = template.Must(template.New("backend").Parse(`
<!DOCTYPE html>
<html>
	<head>
		<base href="{{ .Prefix }}">
		<link rel="stylesheet" type="text/css" href="/assets/bootstrap-4.4.1.min.css">
		<meta charset="utf-8">
		<title>Node access</title>
	</head>
	<body>

		{{ if .LoggedIn }}
			<nav class="navbar navbar-expand-md bg-light">
				<ul class="navbar-nav">
					<li class="nav-item">
						<span class="nav-link">{{ .User.Name }}</span>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="logout">Logout</a>
					</li>
				</ul>
			</nav>
		{{ end }}

		<div class="container pt-3">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</div>
	</body>
</html>`))
