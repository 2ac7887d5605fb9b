package backend

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/nodeaccess/core"
)

func autocomplete(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if !ctx.Permissions.HasAny(core.GrantPermissions...) {
		return core.ErrForbidden
	}

	suggestions, err := ctx.db.LookupUsers(req.URL.Query().Get("q"))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(suggestions)
}
