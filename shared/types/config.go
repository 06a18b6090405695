package types

import "time"

// Config contains the configuration shared by the router and the handlers.
type Config struct {
	// HTTPPort is the port the server listens on
	HTTPPort int
	// BasePath is the base URL path for the application
	BasePath string
	// ActionParam is the query parameter used for actions
	ActionParam string

	// StoreDriver selects the profile store backend (sqlite, mysql, postgres, sqlserver)
	StoreDriver string
	// StoreDSN is the profile store data source
	StoreDSN string

	// RowLimit caps the rows returned by the SQL terminal; 0 is unbounded
	RowLimit int
	// PageSize is the default page size when browsing a table
	PageSize int
	// DialTimeout bounds connecting to a MySQL server
	DialTimeout time.Duration

	// AuthJWTSecret enables bearer authentication when not empty
	AuthJWTSecret string
	// AuthJWTIssuer is the required token issuer, if set
	AuthJWTIssuer string
}
