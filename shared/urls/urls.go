package urls

import (
	neturl "net/url"
	"sort"

	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/samber/lo"
)

// DefaultActionParam is the query key used when none is configured.
const DefaultActionParam = "action"

// ProfilesList builds the URL listing saved profiles.
func ProfilesList(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionProfilesList, params...)
}

// DatabasesList builds the URL listing the databases of a profile.
func DatabasesList(basePath string, profileID string) string {
	return URL(basePath, constants.ActionDatabasesList, map[string]string{constants.ParamProfileID: profileID})
}

// TablesList builds the URL listing the tables of a database.
func TablesList(basePath, profileID, database string) string {
	return URL(basePath, constants.ActionTablesList, map[string]string{
		constants.ParamProfileID: profileID,
		constants.ParamDatabase:  database,
	})
}

// RowsBrowse builds the URL for one page of table rows.
func RowsBrowse(basePath, table string, params ...map[string]string) string {
	p := lo.Assign(lo.FirstOr(params, map[string]string{}), map[string]string{constants.ParamTable: table})
	return URL(basePath, constants.ActionRowsBrowse, p)
}

// URL builds an action URL with the default action parameter.
func URL(basePath, action string, params ...map[string]string) string {
	return Build(basePath, DefaultActionParam, action, params...)
}

// Build constructs a URL like: basePath?actionParam=action&k=v...
// Keys are sorted for stable output. Values are URL-escaped.
func Build(basePath, actionParam, action string, params ...map[string]string) string {
	p := lo.FirstOr(params, map[string]string{})

	if basePath == "" || basePath[0] != '/' {
		basePath = "/" + basePath
	}
	if actionParam == "" {
		actionParam = DefaultActionParam
	}
	q := neturl.Values{}
	q.Set(actionParam, action)
	keys := lo.Filter(lo.Keys(p), func(k string, _ int) bool { return k != "" && k != actionParam })
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, p[k])
	}
	return basePath + "?" + q.Encode()
}
