package sqldb

import (
	"database/sql"

	"github.com/wansing/nodeaccess/core"
)

type PermissionDB struct {
	db     *sql.DB
	get    *sql.Stmt
	insert *sql.Stmt
	remove *sql.Stmt
}

func NewPermissionDB(db *sql.DB) *PermissionDB {

	db.Exec(`
		CREATE TABLE IF NOT EXISTS user_permission (
			userId int(11) NOT NULL,
			permission varchar(64) NOT NULL,
			PRIMARY KEY (userId, permission)
		);`)

	var permDB = &PermissionDB{}
	permDB.db = db
	permDB.get = mustPrepare(db, "SELECT permission FROM user_permission WHERE userId = ?")
	permDB.insert = mustPrepare(db, "INSERT OR IGNORE INTO user_permission (userId, permission) VALUES (?, ?)")
	permDB.remove = mustPrepare(db, "DELETE FROM user_permission WHERE userId = ? AND permission = ?")
	return permDB
}

// GetPermissions skips unknown permission names.
func (p *PermissionDB) GetPermissions(userID int) (core.PermissionSet, error) {
	rows, err := p.get.Query(userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms = core.PermissionSet{}
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, err
		}
		if perm := core.Permission(name); perm.Valid() {
			perms[perm] = struct{}{}
		}
	}
	return perms, rows.Err()
}

func (p *PermissionDB) InsertPermission(userID int, perm core.Permission) error {
	_, err := p.insert.Exec(userID, string(perm))
	return err
}

func (p *PermissionDB) RemovePermission(userID int, perm core.Permission) error {
	_, err := p.remove.Exec(userID, string(perm))
	return err
}
