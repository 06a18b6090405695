// Package mysqlmanager provides an embeddable MySQL browser: saved
// connection profiles, database and table listings, table paging and an
// ad-hoc SQL terminal, served as JSON through a single action-routed endpoint.
package mysqlmanager

import (
	"log/slog"
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/api/api_connection_check"
	"github.com/dracory/mysqlmanager/api/api_databases_list"
	"github.com/dracory/mysqlmanager/api/api_profile_delete"
	"github.com/dracory/mysqlmanager/api/api_profile_get"
	"github.com/dracory/mysqlmanager/api/api_profile_save"
	"github.com/dracory/mysqlmanager/api/api_profiles_list"
	"github.com/dracory/mysqlmanager/api/api_rows_browse"
	"github.com/dracory/mysqlmanager/api/api_sql_execute"
	"github.com/dracory/mysqlmanager/api/api_sql_explain"
	"github.com/dracory/mysqlmanager/api/api_sql_highlight"
	"github.com/dracory/mysqlmanager/api/api_sql_status"
	"github.com/dracory/mysqlmanager/api/api_table_info"
	"github.com/dracory/mysqlmanager/api/api_tables_list"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/dbclient"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/dracory/mysqlmanager/shared/sqlhighlight"
	"github.com/dracory/mysqlmanager/shared/types"
	"github.com/dracory/mysqlmanager/shared/urls"
	"github.com/samber/lo"
)

// App represents the main application instance
type App struct {
	config      types.Config
	profiles    *profile.Store
	dispatcher  *dbclient.Dispatcher
	terminal    *dbclient.Terminal
	browser     *dbclient.Browser
	highlighter *sqlhighlight.Highlighter
	logger      *slog.Logger
	opener      dbclient.Opener
}

// Option customizes an App.
type Option func(*App)

// WithOpener replaces the MySQL session opener.
func WithOpener(open dbclient.Opener) Option {
	return func(a *App) { a.opener = open }
}

// WithLogger sets the logger used by the app and its dispatcher.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates a new App over an opened profile store.
// The configuration should be loaded using LoadConfig() from config.go
func New(cfg types.Config, profiles *profile.Store, options ...Option) *App {
	if cfg.ActionParam == "" {
		cfg.ActionParam = urls.DefaultActionParam
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/"
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = dbclient.DefaultDialTimeout
	}

	a := &App{
		config:      cfg,
		profiles:    profiles,
		highlighter: sqlhighlight.New(sqlhighlight.DefaultKeywords),
		logger:      slog.Default(),
	}
	for _, option := range options {
		option(a)
	}
	if a.opener == nil {
		a.opener = dbclient.MySQLOpener(cfg.DialTimeout)
	}

	a.dispatcher = dbclient.NewDispatcher(a.opener,
		dbclient.WithRowLimit(cfg.RowLimit),
		dbclient.WithLogger(a.logger),
	)
	a.terminal = dbclient.NewTerminal(a.dispatcher)
	a.browser = dbclient.NewBrowser(a.opener)
	return a
}

// Handler returns an http.Handler that serves the API
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(a.config.BasePath, a.handleRequest)

	return a.middleware(a.authenticate(mux))
}

// Wait blocks until statements still running in the terminal finish.
func (a *App) Wait() {
	a.terminal.Wait()
}

// handleRequest routes requests to the appropriate handler
func (a *App) handleRequest(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get(a.config.ActionParam)

	switch action {
	case constants.ActionHealthz:
		api.Respond(w, r, api.Success("ok"))

	case constants.ActionProfilesList:
		api_profiles_list.New(a.profiles).ServeHTTP(w, r)

	case constants.ActionProfileGet:
		api_profile_get.New(a.profiles).ServeHTTP(w, r)

	case constants.ActionProfileSave:
		api_profile_save.New(a.profiles).Handle(w, r)

	case constants.ActionProfileDelete:
		api_profile_delete.New(a.profiles, a.terminal).ServeHTTP(w, r)

	case constants.ActionConnectionTest:
		api_connection_check.New(a.profiles, a.browser).ServeHTTP(w, r)

	case constants.ActionDatabasesList:
		api_databases_list.New(a.profiles, a.browser).ServeHTTP(w, r)

	case constants.ActionTablesList:
		api_tables_list.New(a.profiles, a.browser).Handle(w, r)

	case constants.ActionRowsBrowse:
		api_rows_browse.New(a.profiles, a.browser, a.config.PageSize).Handle(w, r)

	case constants.ActionTableInfo:
		api_table_info.New(a.profiles, a.browser).Handle(w, r)

	case constants.ActionSQLExecute:
		api_sql_execute.New(a.profiles, a.terminal).Handle(w, r)

	case constants.ActionSQLStatus:
		api_sql_status.New(a.terminal).ServeHTTP(w, r)

	case constants.ActionSQLExplain:
		api_sql_explain.New(a.profiles, a.dispatcher).Handle(w, r)

	case constants.ActionSQLHighlight:
		api_sql_highlight.New(a.highlighter).ServeHTTP(w, r)

	case "", constants.ActionHome:
		api.Respond(w, r, api.SuccessWithData("mysqlmanager", map[string]any{
			"actions": a.actionURLs(),
		}))

	default:
		api.Respond(w, r, api.Error("unknown action: "+action))
	}
}

var routedActions = []string{
	constants.ActionHealthz,
	constants.ActionProfilesList,
	constants.ActionProfileGet,
	constants.ActionProfileSave,
	constants.ActionProfileDelete,
	constants.ActionConnectionTest,
	constants.ActionDatabasesList,
	constants.ActionTablesList,
	constants.ActionRowsBrowse,
	constants.ActionTableInfo,
	constants.ActionSQLExecute,
	constants.ActionSQLStatus,
	constants.ActionSQLExplain,
	constants.ActionSQLHighlight,
}

func (a *App) actionURLs() map[string]string {
	return lo.SliceToMap(routedActions, func(action string) (string, string) {
		return action, urls.Build(a.config.BasePath, a.config.ActionParam, action)
	})
}

// middleware applies common middleware to all handlers
func (a *App) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		w.Header().Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}
