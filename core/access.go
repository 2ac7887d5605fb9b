package core

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrForbidden means that access is denied. Callers must not distinguish between its causes.
var ErrForbidden = errors.New("forbidden")

// RequireGrantTab returns nil if a user with the given permissions may access the grant tab of the node with the given id.
//
// The content type of the node must have the grant tab enabled, and the user must hold at least one of GrantPermissions.
// A missing or invalid id, an unknown node or a disabled content type result in an error which wraps ErrForbidden.
// Other errors come from the database and are returned as they are.
func (c *CoreDB) RequireGrantTab(nodeIDParam string, perms PermissionSet) error {

	nodeID, err := strconv.Atoi(nodeIDParam)
	if err != nil || nodeID <= 0 {
		return ErrForbidden
	}

	node, err := c.NodeDB.GetNode(nodeID)
	if err != nil {
		if c.NodeDB.IsNotFound(err) {
			return fmt.Errorf("node %d: %w", nodeID, ErrForbidden)
		}
		return err
	}

	enabled, err := c.ContentTypeDB.GrantTabEnabled(node.Type())
	if err != nil {
		return err
	}
	if !enabled {
		return fmt.Errorf("grant tab of content type %s is disabled: %w", node.Type(), ErrForbidden)
	}

	if !perms.HasAny(GrantPermissions...) {
		return ErrForbidden
	}

	return nil
}

// RequirePermission returns ErrForbidden if perms does not contain perm.
func RequirePermission(perms PermissionSet, perm Permission) error {
	if !perms.Has(perm) {
		return fmt.Errorf("missing permission %s: %w", perm, ErrForbidden)
	}
	return nil
}
