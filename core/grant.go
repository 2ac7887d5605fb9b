package core

import (
	"database/sql"
	"errors"
	"strings"
)

// RealmUser is the realm of grants which are assigned to a single user.
const RealmUser = "nodeaccess_uid"

// GrantMask is a bit set of the operations a grant allows.
type GrantMask int

const (
	MaskView GrantMask = 1 << iota
	MaskUpdate
	MaskDelete
)

func (m GrantMask) View() bool {
	return m&MaskView != 0
}

func (m GrantMask) Update() bool {
	return m&MaskUpdate != 0
}

func (m GrantMask) Delete() bool {
	return m&MaskDelete != 0
}

func (m GrantMask) Valid() bool {
	return m >= 0 && m <= MaskView|MaskUpdate|MaskDelete
}

func (m GrantMask) String() string {
	var ops []string
	if m.View() {
		ops = append(ops, "view")
	}
	if m.Update() {
		ops = append(ops, "update")
	}
	if m.Delete() {
		ops = append(ops, "delete")
	}
	if len(ops) == 0 {
		return "none"
	}
	return strings.Join(ops, ", ")
}

// A Grant authorizes a grantee to view, update or delete a node.
type Grant struct {
	NodeID int
	UserID int // grantee
	Realm  string
	Mask   GrantMask
}

type GrantDB interface {
	GetGrants(nodeID int, realm string) ([]Grant, error)
	RemoveGrant(nodeID, userID int, realm string) (int64, error) // returns the number of removed rows
	UpsertGrant(g Grant) error
}

var (
	ErrInvalidMask = errors.New("invalid grant mask")
	ErrUnknownUser = errors.New("unknown user")
)

// GetUserGrants returns the user grants of a node.
func (c *CoreDB) GetUserGrants(nodeID int) ([]Grant, error) {
	return c.GrantDB.GetGrants(nodeID, RealmUser)
}

// AddUserGrant shadows GrantDB.UpsertGrant. It replaces an existing user grant of the same node and user.
func (c *CoreDB) AddUserGrant(nodeID, userID int, mask GrantMask) (DBUser, error) {
	if !mask.Valid() {
		return nil, ErrInvalidMask
	}
	u, err := c.UserDB.GetUser(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	err = c.GrantDB.UpsertGrant(Grant{
		NodeID: nodeID,
		UserID: u.ID(),
		Realm:  RealmUser,
		Mask:   mask,
	})
	return u, err
}

// RemoveUserGrant removes the user grant of a node and user. Removing a grant which does not exist is not an error.
func (c *CoreDB) RemoveUserGrant(nodeID, userID int) (int64, error) {
	return c.GrantDB.RemoveGrant(nodeID, userID, RealmUser)
}
