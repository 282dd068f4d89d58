// Package archive fetches tables from the NASA Exoplanet Archive TAP
// service: query construction, rate-limited HTTP with retry, and CSV
// parsing into flat tables.
package archive

import (
	"net/url"
	"strconv"
	"strings"
)

// Query describes one ADQL select against a named TAP table.
type Query struct {
	Table   string
	Columns string // comma-separated column list; empty means "*"
	Where   string // filter expression without the WHERE keyword
	OrderBy string
	Limit   int // 0 = no limit
}

// ADQL renders the query text.
func (q Query) ADQL() string {
	columns := q.Columns
	if columns == "" {
		columns = "*"
	}

	parts := []string{"select " + columns, "from " + q.Table}
	if q.Where != "" {
		parts = append(parts, "where "+q.Where)
	}
	if q.OrderBy != "" {
		parts = append(parts, "order by "+q.OrderBy)
	}
	if q.Limit > 0 {
		parts = append(parts, "limit "+strconv.Itoa(q.Limit))
	}
	return strings.Join(parts, " ")
}

// URL renders the full sync-endpoint URL requesting CSV output.
func (q Query) URL(baseURL string) string {
	v := url.Values{}
	v.Set("query", q.ADQL())
	v.Set("format", "csv")
	return baseURL + "?" + v.Encode()
}
