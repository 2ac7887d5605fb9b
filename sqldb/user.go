package sqldb

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/wansing/nodeaccess/core"
	"golang.org/x/crypto/bcrypt"
)

var ErrAuth = errors.New("authentication failed")

func clean(name string) string {
	return strings.TrimSpace(name)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type user struct {
	id   int
	name string
}

func (u *user) ID() int {
	return u.id
}

func (u *user) Name() string {
	return u.name
}

type UserDB struct {
	*sql.DB
	get         *sql.Stmt
	getByName   *sql.Stmt
	insert      *sql.Stmt
	login       *sql.Stmt
	search      *sql.Stmt
	setPassword *sql.Stmt
}

func NewUserDB(db *sql.DB) *UserDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS usr (
			id INTEGER PRIMARY KEY,
			name varchar(128) NOT NULL,
			password varchar(72) NOT NULL DEFAULT '',
			UNIQUE(name)
		);`)

	var userDB = &UserDB{}
	userDB.DB = db
	userDB.get = mustPrepare(db, "SELECT name FROM usr WHERE id = ? LIMIT 1")
	userDB.getByName = mustPrepare(db, "SELECT id FROM usr WHERE name = ? LIMIT 1")
	userDB.insert = mustPrepare(db, "INSERT INTO usr (name) VALUES (?)") // empty password field is safe because no bcrypt hash equals it
	userDB.login = mustPrepare(db, "SELECT id, password FROM usr WHERE name = ?")
	userDB.search = mustPrepare(db, `SELECT id, name FROM usr WHERE name LIKE ? ESCAPE '\' ORDER BY name ASC LIMIT ?`)
	userDB.setPassword = mustPrepare(db, "UPDATE usr SET password = ? WHERE id = ?")
	return userDB
}

// GetUser may return sql.ErrNoRows.
func (db *UserDB) GetUser(id int) (core.DBUser, error) {
	var u = &user{
		id: id,
	}
	if err := db.get.QueryRow(id).Scan(&u.name); err != nil {
		return nil, err
	}
	return u, nil
}

func (db *UserDB) GetUserByName(name string) (core.DBUser, error) {
	var u = &user{
		name: clean(name),
	}
	if err := db.getByName.QueryRow(u.name).Scan(&u.id); err != nil {
		return nil, err
	}
	return u, nil
}

func (db *UserDB) InsertUser(name string) (core.DBUser, error) {
	name = clean(name)
	if name == "" {
		return nil, errors.New("user name can't be empty")
	}
	res, err := db.insert.Exec(name)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &user{
		id:   int(id),
		name: name,
	}, nil
}

func (db *UserDB) LoginUser(name, password string) (core.DBUser, error) {

	var u = &user{
		name: clean(name),
	}
	var hash string

	err := db.login.QueryRow(u.name).Scan(&u.id, &hash)
	if err == sql.ErrNoRows {
		return nil, ErrAuth // user not found
	}
	if err != nil {
		return nil, err
	}

	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrAuth // no password set or wrong password
	}

	return u, nil
}

// SearchUsers returns users whose name contains substr. LIKE wildcards in substr are matched literally.
func (db *UserDB) SearchUsers(substr string, limit int) ([]core.DBUser, error) {

	rows, err := db.search.Query("%"+likeEscaper.Replace(substr)+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result = []core.DBUser{}
	for rows.Next() {
		var u = &user{}
		if err := rows.Scan(&u.id, &u.name); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func (db *UserDB) SetPassword(u core.DBUser, password string) error {

	if password == "" {
		return errors.New("no password given")
	}

	if u.ID() == 0 {
		return errors.New("can't set password of user 0")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.setPassword.Exec(string(hash), u.ID())
	return err
}
