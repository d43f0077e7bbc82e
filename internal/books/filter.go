package books

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Filter is the typed form of the listing query string. Values only ever
// reach the database as bound parameters; the sort key is an allow-list
// lookup, never caller text.
type Filter struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
}

var allowedSorts = map[string]string{
	"name":  "name ASC",
	"price": "price ASC",
}

// ParseFilter reads search/minprice/maxprice/sort from the query string.
// Unparseable prices and unknown sort keys are dropped, matching the
// forgiving behavior of the listing this replaces.
func ParseFilter(q url.Values) Filter {
	f := Filter{
		Search: strings.TrimSpace(q.Get("search")),
		Sort:   strings.ToLower(strings.TrimSpace(q.Get("sort"))),
	}

	if v := q.Get("minprice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := q.Get("maxprice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}

	if _, ok := allowedSorts[f.Sort]; !ok {
		f.Sort = ""
	}

	return f
}

// Apply attaches the filter's predicates and ordering to a query.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	if f.Search != "" {
		db = db.Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, "%"+escapeLike(f.Search)+"%")
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", *f.MaxPrice)
	}

	order, ok := allowedSorts[f.Sort]
	if !ok {
		order = allowedSorts["name"]
	}
	return db.Order(order)
}

// escapeLike neutralizes LIKE wildcards in user search terms so "100%" only
// matches the literal text.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
