package sqldb

import (
	"database/sql"

	"github.com/wansing/nodeaccess/core"
)

type GrantDB struct {
	db     *sql.DB
	get    *sql.Stmt
	remove *sql.Stmt
	upsert *sql.Stmt
}

func NewGrantDB(db *sql.DB) *GrantDB {

	db.Exec(`
		CREATE TABLE IF NOT EXISTS grants (
			nodeId int(11) NOT NULL,
			userId int(11) NOT NULL,
			realm varchar(32) NOT NULL,
			mask int(11) NOT NULL,
			PRIMARY KEY (nodeId, userId, realm)
		);`)

	var grantDB = &GrantDB{}
	grantDB.db = db
	grantDB.get = mustPrepare(db, "SELECT userId, mask FROM grants WHERE nodeId = ? AND realm = ? ORDER BY userId")
	grantDB.remove = mustPrepare(db, "DELETE FROM grants WHERE nodeId = ? AND userId = ? AND realm = ?")
	grantDB.upsert = mustPrepare(db, "INSERT OR REPLACE INTO grants (nodeId, userId, realm, mask) VALUES (?, ?, ?, ?)")
	return grantDB
}

func (g *GrantDB) GetGrants(nodeID int, realm string) ([]core.Grant, error) {
	rows, err := g.get.Query(nodeID, realm)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants = []core.Grant{}
	for rows.Next() {
		var grant = core.Grant{
			NodeID: nodeID,
			Realm:  realm,
		}
		if err = rows.Scan(&grant.UserID, &grant.Mask); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

func (g *GrantDB) RemoveGrant(nodeID, userID int, realm string) (int64, error) {
	res, err := g.remove.Exec(nodeID, userID, realm)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (g *GrantDB) UpsertGrant(grant core.Grant) error {
	_, err := g.upsert.Exec(grant.NodeID, grant.UserID, grant.Realm, int(grant.Mask))
	return err
}
