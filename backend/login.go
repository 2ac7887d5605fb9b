package backend

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/nodeaccess/core"
)

var ErrLogin = errors.New("wrong username or password")

var loginTmpl = tmpl(`<h1>Login</h1>
	<form method="post" style="max-width: 20rem; margin: auto;">
		<div class="form-group">
			<label>Name</label>
			<input type="text" class="form-control" name="name" value="{{ .Name }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Password</label>
			<input type="password" class="form-control" name="password" required>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="login">Login</button>
		</div>
	</form>`)

type loginData struct {
	*context
	Name string
}

func login(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var name string

	if req.Method == http.MethodPost {

		name = req.PostFormValue("name")
		password := req.PostFormValue("password")

		if err := ctx.Login(name, password); err == nil {
			ctx.SeeOther("/")
			return nil
		}

		ctx.Danger(ErrLogin)
		// keep POST data for name field
	}

	return loginTmpl.Execute(w, &loginData{
		context: ctx,
		Name:    name,
	})
}

func logout(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {
	ctx.Logout()
	ctx.Success(core.MsgGoodbye)
	ctx.SeeOther("/login")
	return nil
}

var rootTmpl = tmpl(`<h1>Node access</h1>
	<p>Open <code>content/ID/grants</code> to manage the grants of a node.</p>`)

func root(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {
	if !ctx.LoggedIn() {
		ctx.SeeOther("/login")
		return nil
	}
	return rootTmpl.Execute(w, ctx)
}
