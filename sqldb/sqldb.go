// Package sqldb implements the core database interfaces on top of database/sql.
//
// The statements are written for SQLite.
package sqldb

import (
	"database/sql"
	"fmt"
)

func mustPrepare(db *sql.DB, query string) *sql.Stmt {
	stmt, err := db.Prepare(query)
	if err != nil {
		panic(fmt.Sprintf("error preparing %q: %v", query, err))
	}
	return stmt
}
