package backend

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/nodeaccess/core"
)

var editTmpl = tmpl(`<h1>Edit {{ .Node.Title }}</h1>

	<p>Content type: <code>{{ .Node.Type }}</code></p>

	{{ if .GrantTab }}
		<ul class="nav nav-tabs">
			<li class="nav-item">
				<a class="nav-link active" href="content/{{ .Node.ID }}/edit">Edit</a>
			</li>
			<li class="nav-item">
				<a class="nav-link" href="content/{{ .Node.ID }}/grants">Grants</a>
			</li>
		</ul>
	{{ end }}`)

type editData struct {
	*context
	Node     core.DBNode
	GrantTab bool
}

// edit is a placeholder for the edit view of the host system. Removals redirect here.
func edit(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	nodeID, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		http.NotFound(w, req)
		return nil
	}

	node, err := ctx.db.GetNode(nodeID)
	if err != nil {
		if ctx.db.IsNotFound(err) {
			http.NotFound(w, req)
			return nil
		}
		return err
	}

	return editTmpl.Execute(w, &editData{
		context:  ctx,
		Node:     node,
		GrantTab: ctx.db.RequireGrantTab(params.ByName("id"), ctx.Permissions) == nil,
	})
}
