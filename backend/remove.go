package backend

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/nodeaccess/core"
)

// removeUser deletes the user grant of a node. There is no confirmation step. Authorization is done by the router.
func removeUser(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	nodeID, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		return ErrBadRequest
	}

	userID, err := strconv.Atoi(params.ByName("uid"))
	if err != nil {
		return ErrBadRequest
	}

	if _, err := ctx.db.RemoveUserGrant(nodeID, userID); err != nil {
		return err
	}

	ctx.Success(core.MsgUserRemoved)
	ctx.SeeOther(fmt.Sprintf("/content/%d/edit", nodeID))
	return nil
}
