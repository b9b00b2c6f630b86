package cmsdata

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Operator is a comparison token understood by the dataset filter API.
type Operator string

const (
	OpEqual          Operator = "="
	OpContains       Operator = "CONTAINS"
	OpIn             Operator = "IN"
	OpGreaterOrEqual Operator = ">="
	OpLessOrEqual    Operator = "<="
)

const (
	DefaultPageSize = 100
	// defaultMaxAllPages caps accumulated rows when FetchAllPages is set and
	// the caller gave no MaxTotalResults.
	defaultMaxAllPages = 5000
)

// Filter constrains one dataset column. Value may be a string, a number, a
// pointer to either, or a slice of them; slices become numbered values and
// empty values are dropped when the URL is built.
type Filter struct {
	Field    string
	Operator Operator
	Value    any
}

// FetchOptions controls sorting, projection and paging of a query.
type FetchOptions struct {
	SortField       string
	SortDescending  bool
	PageSize        int
	Offset          int
	Columns         []string
	FetchAllPages   bool
	MaxTotalResults int
}

// WithDefaults fills unset paging fields.
func (o FetchOptions) WithDefaults() FetchOptions {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.MaxTotalResults <= 0 {
		if o.FetchAllPages {
			o.MaxTotalResults = defaultMaxAllPages
		} else {
			o.MaxTotalResults = o.PageSize
		}
	}
	return o
}

// BuildFilterURL renders filters and options into a dataset query URL.
// The result is deterministic for identical inputs because it doubles as the
// response cache key.
func BuildFilterURL(baseURL string, filters []Filter, opts FetchOptions) string {
	params := url.Values{}

	i := 0
	for _, f := range filters {
		values, isList, ok := filterValues(f.Value)
		if !ok || f.Field == "" {
			continue
		}
		prefix := fmt.Sprintf("filter[%d]", i)
		params.Set(prefix+"[path]", f.Field)
		op := f.Operator
		if op == "" {
			op = OpEqual
		}
		params.Set(prefix+"[operator]", string(op))
		if isList {
			for j, v := range values {
				params.Set(fmt.Sprintf("%s[value][%d]", prefix, j), v)
			}
		} else {
			params.Set(prefix+"[value]", values[0])
		}
		i++
	}

	if opts.SortField != "" {
		sort := opts.SortField
		if opts.SortDescending {
			sort = "-" + sort
		}
		params.Set("sort", sort)
	}

	if len(opts.Columns) > 0 {
		params.Set("column", strings.Join(opts.Columns, ","))
	}

	size := opts.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	params.Set("size", strconv.Itoa(size))
	params.Set("offset", strconv.Itoa(offset))

	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	// Encode sorts by key.
	return baseURL + sep + params.Encode()
}

// filterValues stringifies a filter value. isList is true for slices. ok is
// false for values that must not constrain the query: nil, "", and empty lists.
func filterValues(v any) (values []string, isList, ok bool) {
	if v == nil {
		return nil, false, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		str, present := scalarValue(v)
		if !present {
			return nil, false, false
		}
		return []string{str}, false, true
	}

	values = make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		if str, present := scalarValue(rv.Index(i).Interface()); present {
			values = append(values, str)
		}
	}
	return values, true, len(values) > 0
}

func scalarValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case *string:
		if val == nil {
			return "", false
		}
		return scalarValue(*val)
	case *float64:
		if val == nil {
			return "", false
		}
		return scalarValue(*val)
	default:
		s := fmt.Sprint(val)
		return s, s != ""
	}
}
