package main

import (
	"database/sql"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-playground/form/v4"
	"github.com/mabego/springai-web/internal/buildconfig"
	"github.com/mabego/springai-web/internal/database"
	"github.com/mabego/springai-web/internal/router"
	"github.com/mabego/springai-web/internal/storage"
	"github.com/mabego/springai-web/ui"
)

const (
	IdleTimeout  = time.Minute
	ReadTimeout  = 5 * time.Second
	WriteTimeout = 10 * time.Second

	// SessionLifetime keeps the stored token until logout clears it.
	SessionLifetime = 100 * 365 * 24 * time.Hour
)

type application struct {
	debug          bool
	errorLog       *log.Logger
	infoLog        *log.Logger
	router         *router.Router
	views          *viewCache
	sprites        *spriteSource
	formDecoder    *form.Decoder
	sessionManager *scs.SessionManager
	tokens         storage.Store
}

func main() {
	addr := flag.String("addr", ":4001", "HTTP network address")
	dsn := flag.String("dsn", "", "MySQL data source name for sessions (in-memory when empty)")
	debug := flag.Bool("debug", false, "Enable debug mode in the browser")
	icons := flag.String("icons", "", "Read icons from this directory and rebuild the sprite on change")
	history := flag.Bool("history", false, "Use path URLs instead of hash URLs in links")

	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	cfg, err := buildconfig.Load(ui.Files, "build.yaml")
	if err != nil {
		errorLog.Fatal(err)
	}

	mode := router.HashMode
	if *history {
		mode = router.HistoryMode
	}

	rt, err := router.New(mode, router.DefaultRoutes())
	if err != nil {
		errorLog.Fatal(err)
	}

	var store scs.Store = memstore.New()

	if *dsn != "" {
		db, err := database.Open(*dsn)
		if err != nil {
			errorLog.Fatal(err)
		}
		defer func(db *sql.DB) {
			if err := db.Close(); err != nil {
				errorLog.Print(err)
			}
		}(db)

		if err := database.Migrate(db); err != nil {
			errorLog.Fatal(err)
		}

		store = mysqlstore.New(db)
		infoLog.Print("Sessions stored in MySQL")
	}

	sessionManager := newSessionManager(store)

	var (
		iconFS   fs.FS = ui.Files
		iconDirs       = cfg.SVGIcons.IconDirs
		ttl      time.Duration
	)
	if *icons != "" {
		iconFS, iconDirs, ttl = os.DirFS(*icons), []string{"."}, devSpriteTTL
		infoLog.Printf("Serving icons from %s", *icons)
	}

	app := &application{
		debug:          *debug,
		errorLog:       errorLog,
		infoLog:        infoLog,
		router:         rt,
		views:          newViewCache(ui.Files, cfg),
		sprites:        newSpriteSource(iconFS, iconDirs, cfg, ttl),
		formDecoder:    form.NewDecoder(),
		sessionManager: sessionManager,
		tokens:         storage.NewSessionStore(sessionManager),
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      app.routes(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
		ErrorLog:     errorLog,
	}

	infoLog.Printf("Starting server on %s", *addr)
	errorLog.Fatal(srv.ListenAndServe())
}

// newSessionManager returns the session manager behind the token store. The
// session has no idle timeout and outlives any realistic client.
func newSessionManager(store scs.Store) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = store
	sessionManager.Lifetime = SessionLifetime
	sessionManager.IdleTimeout = 0

	return sessionManager
}
