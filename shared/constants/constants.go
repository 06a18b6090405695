package constants

// Action names for the single-endpoint router.
const (
	ActionHome    = "home"
	ActionHealthz = "healthz"

	ActionProfilesList   = "profiles_list"
	ActionProfileGet     = "profile_get"
	ActionProfileSave    = "profile_save"
	ActionProfileDelete  = "profile_delete"
	ActionConnectionTest = "connection_test"

	ActionDatabasesList = "databases_list"
	ActionTablesList    = "tables_list"
	ActionRowsBrowse    = "rows_browse"
	ActionTableInfo     = "table_info"

	ActionSQLExecute   = "sql_execute"
	ActionSQLStatus    = "sql_status"
	ActionSQLExplain   = "sql_explain"
	ActionSQLHighlight = "sql_highlight"
)

// Request parameter names.
const (
	ParamID        = "id"
	ParamProfileID = "profile_id"
	ParamDatabase  = "database"
	ParamTable     = "table"
	ParamPage      = "page"
	ParamPageSize  = "page_size"
	ParamSQL       = "sql"
)
