package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/nodeaccess/core"
)

var grantsTmpl = tmpl(`<h1>Grants of {{ .Node.Title }}</h1>

	<p>
		<a class="btn btn-secondary" href="content/{{ .Node.ID }}/edit">Back</a>
	</p>

	<table class="table">
		<tr>
			<th>User</th>
			<th>View</th>
			<th>Update</th>
			<th>Delete</th>
			<th></th>
		</tr>
		{{ range .Rows }}
			<tr>
				<td>{{ .Name }}</td>
				<td>{{ if .Mask.View }}&#10003;{{ end }}</td>
				<td>{{ if .Mask.Update }}&#10003;{{ end }}</td>
				<td>{{ if .Mask.Delete }}&#10003;{{ end }}</td>
				<td>
					{{ if $.Can "grant_delete" }}
						<a href="content/{{ .NodeID }}/grants/remove/{{ .UserID }}">Remove</a>
					{{ end }}
				</td>
			</tr>
		{{ else }}
			<tr>
				<td colspan="5">No user grants.</td>
			</tr>
		{{ end }}
	</table>

	{{ if .Can "grant_update" }}
		<h2>Grant access to a user</h2>
		<form method="post" class="form-inline">
			<input type="text" class="form-control mr-2" name="user" list="user-suggestions" autocomplete="off" placeholder="User" required>
			<datalist id="user-suggestions"></datalist>
			<label class="mr-2"><input type="checkbox" name="view" checked> View</label>
			<label class="mr-2"><input type="checkbox" name="update"> Update</label>
			<label class="mr-2"><input type="checkbox" name="delete"> Delete</label>
			<button type="submit" class="btn btn-primary">Save</button>
		</form>
		<script>
			document.getElementsByName("user")[0].addEventListener("input", function() {
				var list = document.getElementById("user-suggestions");
				fetch("user-autocomplete?q=" + encodeURIComponent(this.value)).then(function(resp) {
					return resp.json();
				}).then(function(suggestions) {
					list.innerHTML = "";
					suggestions.forEach(function(s) {
						var option = document.createElement("option");
						option.value = s.value;
						option.innerHTML = s.label;
						list.appendChild(option);
					});
				});
			});
		</script>
	{{ end }}`)

type grantRow struct {
	core.Grant
	Name string
}

type grantsData struct {
	*context
	Node core.DBNode
	Rows []grantRow
}

// nodeParam parses the id parameter. It has been validated by grantTab before.
func nodeParam(ctx *context, params httprouter.Params) (core.DBNode, error) {
	nodeID, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		return nil, ErrBadRequest
	}
	return ctx.db.GetNode(nodeID)
}

func grants(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	node, err := nodeParam(ctx, params)
	if err != nil {
		return err
	}

	userGrants, err := ctx.db.GetUserGrants(node.ID())
	if err != nil {
		return err
	}

	var rows = make([]grantRow, 0, len(userGrants))
	for _, g := range userGrants {
		var row = grantRow{
			Grant: g,
			Name:  fmt.Sprintf("unknown user #%d", g.UserID), // dangling grant
		}
		if u, err := ctx.db.GetUser(g.UserID); err == nil {
			row.Name = u.Name()
		}
		rows = append(rows, row)
	}

	return grantsTmpl.Execute(w, &grantsData{
		context: ctx,
		Node:    node,
		Rows:    rows,
	})
}

func addGrant(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	node, err := nodeParam(ctx, params)
	if err != nil {
		return err
	}

	var back = fmt.Sprintf("/content/%d/grants", node.ID())

	_, userID, err := core.ParseSuggestion(req.PostFormValue("user"))
	if err != nil {
		ctx.Danger(err)
		ctx.SeeOther(back)
		return nil
	}

	var mask core.GrantMask
	if req.PostFormValue("view") != "" {
		mask |= core.MaskView
	}
	if req.PostFormValue("update") != "" {
		mask |= core.MaskUpdate
	}
	if req.PostFormValue("delete") != "" {
		mask |= core.MaskDelete
	}

	u, err := ctx.db.AddUserGrant(node.ID(), userID, mask)
	switch {
	case errors.Is(err, core.ErrUnknownUser), errors.Is(err, core.ErrInvalidMask):
		ctx.Danger(err)
	case err != nil:
		return err
	default:
		ctx.Success(core.MsgGrantSaved, u.Name())
	}

	ctx.SeeOther(back)
	return nil
}
