package books

import (
	"net/url"
	"testing"
)

func TestParseFilter_Defaults(t *testing.T) {
	f := ParseFilter(url.Values{})
	if f.Search != "" || f.Sort != "" || f.MinPrice != nil || f.MaxPrice != nil {
		t.Errorf("expected empty filter, got %+v", f)
	}
}

func TestParseFilter_Prices(t *testing.T) {
	f := ParseFilter(url.Values{
		"minprice": {"5"},
		"maxprice": {"10.50"},
	})
	if f.MinPrice == nil || *f.MinPrice != 5 {
		t.Errorf("expected minprice 5, got %v", f.MinPrice)
	}
	if f.MaxPrice == nil || *f.MaxPrice != 10.5 {
		t.Errorf("expected maxprice 10.5, got %v", f.MaxPrice)
	}
}

func TestParseFilter_DropsUnparseablePrices(t *testing.T) {
	f := ParseFilter(url.Values{
		"minprice": {"cheap"},
		"maxprice": {""},
	})
	if f.MinPrice != nil || f.MaxPrice != nil {
		t.Errorf("expected unparseable prices dropped, got %+v", f)
	}
}

// Sort keys outside the allow-list must be dropped, never passed through to
// the query.
func TestParseFilter_SortAllowList(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"name", "name"},
		{"price", "price"},
		{"PRICE", "price"},
		{" name ", "name"},
		{"id", ""},
		{"price; DROP TABLE books", ""},
		{"", ""},
	}

	for _, tc := range cases {
		f := ParseFilter(url.Values{"sort": {tc.in}})
		if f.Sort != tc.want {
			t.Errorf("sort %q: expected %q, got %q", tc.in, tc.want, f.Sort)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"under_score", `under\_score`},
		{`back\slash`, `back\\slash`},
		{"%_", `\%\_`},
	}

	for _, tc := range cases {
		if got := escapeLike(tc.in); got != tc.want {
			t.Errorf("escapeLike(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
