package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/physiciansearch/backend/pkg/errors"
)

// queryReader parses typed query parameters and keeps the first error.
type queryReader struct {
	values url.Values
	err    error
}

func newQueryReader(values url.Values) *queryReader {
	return &queryReader{values: values}
}

func (q *queryReader) str(key string) string {
	return strings.TrimSpace(q.values.Get(key))
}

func (q *queryReader) list(key string) []string {
	var out []string
	for _, raw := range q.values[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (q *queryReader) integer(key string) int {
	raw := q.str(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		q.fail(key, "an integer")
		return 0
	}
	return n
}

func (q *queryReader) number(key string) *float64 {
	raw := q.str(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.fail(key, "a number")
		return nil
	}
	return &f
}

func (q *queryReader) flag(key string) bool {
	b := q.optionalFlag(key)
	return b != nil && *b
}

func (q *queryReader) optionalFlag(key string) *bool {
	raw := q.str(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		q.fail(key, "true or false")
		return nil
	}
	return &b
}

func (q *queryReader) paging() repositories.Paging {
	return repositories.Paging{
		Limit:      q.integer("limit"),
		Offset:     q.integer("offset"),
		FetchAll:   q.flag("all"),
		MaxResults: q.integer("max_results"),
	}
}

func (q *queryReader) fail(key, want string) {
	if q.err == nil {
		q.err = apperrors.NewValidationError(fmt.Sprintf("query parameter %q must be %s", key, want))
	}
}
