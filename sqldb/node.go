package sqldb

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/wansing/nodeaccess/core"
)

type node struct {
	id       int
	nodeType string
	title    string
}

func (n *node) ID() int {
	return n.id
}

func (n *node) Type() string {
	return n.nodeType
}

func (n *node) Title() string {
	return n.title
}

type NodeDB struct {
	*sql.DB
	get    *sql.Stmt
	insert *sql.Stmt
}

func NewNodeDB(db *sql.DB) *NodeDB {

	db.Exec(`
		CREATE TABLE IF NOT EXISTS node (
			id INTEGER PRIMARY KEY,
			type varchar(64) NOT NULL,
			title varchar(255) NOT NULL
		);`)

	var nodeDB = &NodeDB{}
	nodeDB.DB = db
	nodeDB.get = mustPrepare(db, "SELECT type, title FROM node WHERE id = ?")
	nodeDB.insert = mustPrepare(db, "INSERT INTO node (type, title) VALUES (?, ?)")
	return nodeDB
}

func (db *NodeDB) GetNode(id int) (core.DBNode, error) {
	var n = &node{
		id: id,
	}
	if err := db.get.QueryRow(id).Scan(&n.nodeType, &n.title); err != nil {
		return nil, err
	}
	return n, nil
}

func (db *NodeDB) InsertNode(nodeType, title string) (core.DBNode, error) {
	nodeType = strings.TrimSpace(nodeType)
	if nodeType == "" {
		return nil, errors.New("content type can't be empty")
	}
	res, err := db.insert.Exec(nodeType, title)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &node{
		id:       int(id),
		nodeType: nodeType,
		title:    title,
	}, nil
}

func (db *NodeDB) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
