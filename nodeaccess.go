package main

import (
	"bytes"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wansing/nodeaccess/backend"
	"github.com/wansing/nodeaccess/contenttypes"
	"github.com/wansing/nodeaccess/core"
	"github.com/wansing/nodeaccess/sqldb"
	"github.com/wansing/nodeaccess/sqldb/mysql"
	"github.com/wansing/nodeaccess/sqldb/sqlite3"
	"github.com/wansing/nodeaccess/util"
	"github.com/xo/dburl"
	"golang.org/x/crypto/ssh/terminal"
)

const defaultDB = "sqlite3:nodeaccess.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared"

func init() {
	log.SetFlags(0) // no log prefixes, on most systems systemd-journald adds them
}

func main() {

	var dbArg string // is in both FlagSets

	// default FlagSet

	// Your reverse proxy must not strip the prefix.
	var base = flag.String("base", "", "strip off this `prefix` from every HTTP request and prepend it to every link")
	var contentTypes = flag.String("content-types", "content-types.ini", "read content type settings from this ini `file`")
	flag.StringVar(&dbArg, "db", defaultDB, "sql database url, see github.com/xo/dburl")
	var listenAddr = flag.String("listen", "127.0.0.1:8080", "serve HTTP content at this `ip:port`")

	// init FlagSet

	var initFlags = flag.NewFlagSet("init", flag.ExitOnError)

	initFlags.StringVar(&dbArg, "db", defaultDB, "sql database url, see github.com/xo/dburl")
	var initInsert = initFlags.Bool("insert", false, "creates the given user or node")
	var initPermit = initFlags.Bool("permit", false, "gives the given permission to the given user")
	var nodeType = initFlags.String("node-type", "", "specifies the content `type` of a node")
	var permission = initFlags.String("permission", "", "specifies a permission: grant_view, grant_update or grant_delete")
	var title = initFlags.String("title", "", "specifies the `title` of a node")
	var username = initFlags.String("user", "", "specifies a user `name`")

	if len(os.Args) > 1 && os.Args[1] == "init" {
		initFlags.Parse(os.Args[2:])
	} else {
		flag.Parse()
	}

	// database

	dbURL, err := dburl.Parse(dbArg)
	if err != nil {
		log.Printf("could not parse database url: %v", err)
		return
	}

	sqlDB, err := sql.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		log.Printf("could not open sql database: %v", err)
		return
	}

	if err = sqlDB.Ping(); err != nil {
		log.Printf("could not ping sql database: %v", err)
		return
	}

	log.Printf("using database %s", dbURL.Redacted())

	defer func() {
		log.Println("closing database")
		sqlDB.Close()
	}()

	// base

	*base = strings.Trim(*base, "/")
	if *base != "" {
		*base = "/" + *base
	}

	// assemble stuff

	var sessionStore scs.Store
	switch dbURL.Driver {
	case "mysql":
		sessionStore = mysql.NewSessionStore(sqlDB)
	case "sqlite3":
		sessionStore = sqlite3.NewSessionStore(sqlDB)
	default:
		log.Printf("unknown database backend: %s", dbURL.Driver)
		return
	}

	db := &core.CoreDB{}
	db.Init(sessionStore, *base)

	db.GrantDB = sqldb.NewGrantDB(sqlDB)
	db.NodeDB = sqldb.NewNodeDB(sqlDB)
	db.PermissionDB = sqldb.NewPermissionDB(sqlDB)
	db.UserDB = sqldb.NewUserDB(sqlDB)

	// init

	if initFlags.Parsed() {
		switch {
		case *initInsert:
			if *username != "" {
				insertUser(db, *username)
			}
			if *nodeType != "" {
				insertNode(db, *nodeType, *title)
			}
		case *initPermit:
			if *username != "" && *permission != "" {
				permit(db, *username, core.Permission(*permission))
			}
		}
		return
	}

	typeSettings, err := contenttypes.Load(*contentTypes)
	if err != nil {
		log.Printf("error loading content types: %v", err)
		return
	}
	db.ContentTypeDB = typeSettings

	for _, t := range typeSettings.Types() {
		if enabled, err := typeSettings.GrantTabEnabled(t); err != nil {
			log.Printf("content type %s: %v", t, err)
		} else if enabled {
			log.Printf("grant tab enabled for content type %s", t)
		}
	}

	listen(db, *listenAddr, *base)
}

func insertNode(db *core.CoreDB, nodeType, title string) {
	n, err := db.InsertNode(nodeType, title)
	if err != nil {
		log.Printf("error creating node: %v", err)
		return
	}
	log.Printf("created node %d", n.ID())
}

func insertUser(db *core.CoreDB, name string) {

	fmt.Printf("password for user %s: ", name)
	pass1, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	fmt.Printf("repeat password: ")
	pass2, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	if !bytes.Equal(pass1, pass2) {
		log.Printf("passwords don't match")
		return
	}

	user, err := db.InsertUser(name)
	if err != nil {
		log.Printf("error creating user %s: %v", name, err)
		return
	}

	if err := db.SetPassword(user, string(pass1)); err != nil {
		log.Printf("error setting password: %v", err)
		return
	}
}

func permit(db *core.CoreDB, username string, perm core.Permission) {

	user, err := db.GetUserByName(username)
	if err != nil {
		log.Printf("error getting user %s: %v", username, err)
		return
	}

	if err := db.Permit(user, perm); err != nil {
		log.Printf("error giving %s to %s: %v", perm, username, err)
		return
	}
}

func listen(db *core.CoreDB, addr string, base string) {

	var handler = util.Mount(base, backend.NewBackendRouter(db, base))

	// listener and listen

	sigintChannel := make(chan os.Signal, 1)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Println(err)
		return
	}

	log.Printf("listening to %s", addr)

	httpSrv := &http.Server{
		Handler:      db.SessionManager.LoadAndSave(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if err != http.ErrServerClosed {
				log.Printf("error listening: %v", err)
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	log.Println("shutting down")
	httpSrv.Close()
}
