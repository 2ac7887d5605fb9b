package core

import (
	"database/sql"
	"errors"
	"sort"
	"strings"
)

var errStoreDown = errors.New("store unreachable")

type fakeNode struct {
	id       int
	nodeType string
}

func (n fakeNode) ID() int       { return n.id }
func (n fakeNode) Type() string  { return n.nodeType }
func (n fakeNode) Title() string { return "node" }

type fakeNodeDB struct {
	nodes map[int]string // id -> type
	err   error
}

func (db *fakeNodeDB) GetNode(id int) (DBNode, error) {
	if db.err != nil {
		return nil, db.err
	}
	t, ok := db.nodes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return fakeNode{id, t}, nil
}

func (db *fakeNodeDB) InsertNode(nodeType, title string) (DBNode, error) {
	var id = len(db.nodes) + 1
	db.nodes[id] = nodeType
	return fakeNode{id, nodeType}, nil
}

func (db *fakeNodeDB) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

type fakeTypes map[string]bool

func (t fakeTypes) GrantTabEnabled(contentType string) (bool, error) {
	return t[contentType], nil
}

type fakeUser struct {
	id   int
	name string
}

func (u fakeUser) ID() int      { return u.id }
func (u fakeUser) Name() string { return u.name }

type fakeUserDB struct {
	users    []fakeUser
	searches int
	err      error
}

func (db *fakeUserDB) GetUser(id int) (DBUser, error) {
	for _, u := range db.users {
		if u.id == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (db *fakeUserDB) GetUserByName(name string) (DBUser, error) {
	for _, u := range db.users {
		if u.name == name {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (db *fakeUserDB) InsertUser(name string) (DBUser, error) {
	u := fakeUser{len(db.users) + 1, name}
	db.users = append(db.users, u)
	return u, nil
}

func (db *fakeUserDB) LoginUser(name, password string) (DBUser, error) {
	return db.GetUserByName(name)
}

// SearchUsers behaves like a case-insensitive LIKE.
func (db *fakeUserDB) SearchUsers(substr string, limit int) ([]DBUser, error) {
	db.searches++
	if db.err != nil {
		return nil, db.err
	}
	var matches []fakeUser
	for _, u := range db.users {
		if strings.Contains(strings.ToLower(u.name), strings.ToLower(substr)) {
			matches = append(matches, u)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].name < matches[j].name })
	var result = []DBUser{}
	for i := 0; i < len(matches) && i < limit; i++ {
		result = append(result, matches[i])
	}
	return result, nil
}

func (db *fakeUserDB) SetPassword(u DBUser, password string) error {
	return nil
}

type grantKey struct {
	nodeID, userID int
	realm          string
}

type fakeGrantDB struct {
	grants map[grantKey]GrantMask
	err    error
}

func (db *fakeGrantDB) GetGrants(nodeID int, realm string) ([]Grant, error) {
	var result = []Grant{}
	for k, mask := range db.grants {
		if k.nodeID == nodeID && k.realm == realm {
			result = append(result, Grant{k.nodeID, k.userID, k.realm, mask})
		}
	}
	return result, nil
}

func (db *fakeGrantDB) RemoveGrant(nodeID, userID int, realm string) (int64, error) {
	if db.err != nil {
		return 0, db.err
	}
	k := grantKey{nodeID, userID, realm}
	if _, ok := db.grants[k]; !ok {
		return 0, nil
	}
	delete(db.grants, k)
	return 1, nil
}

func (db *fakeGrantDB) UpsertGrant(g Grant) error {
	if db.err != nil {
		return db.err
	}
	db.grants[grantKey{g.NodeID, g.UserID, g.Realm}] = g.Mask
	return nil
}

func newTestDB() *CoreDB {
	return &CoreDB{
		ContentTypeDB: fakeTypes{"article": true, "page": false},
		GrantDB:       &fakeGrantDB{grants: make(map[grantKey]GrantMask)},
		NodeDB: &fakeNodeDB{nodes: map[int]string{
			1: "article",
			2: "page",
			3: "unconfigured",
		}},
		UserDB: &fakeUserDB{users: []fakeUser{
			{1, "Alice"},
			{2, "Alison"},
			{3, "Natalia"},
			{4, "Bob"},
		}},
	}
}
