package httpkit

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	perr "babyfood/internal/platform/errors"
	phttp "babyfood/internal/platform/net/http"
	pstrings "babyfood/internal/platform/strings"
)

// Param returns the path parameter name, trimmed
func Param(r *http.Request, name string) string {
	return strings.TrimSpace(phttp.URLParam(r, name))
}

// UUIDParam returns the path parameter name in canonical form
// anything that is not a uuid cannot name a row, so it answers NotFound
func UUIDParam(r *http.Request, name string) (string, error) {
	id, err := uuid.Parse(Param(r, name))
	if err != nil {
		return "", perr.WithField(perr.NotFoundf("%s not found", name), name)
	}
	return id.String(), nil
}

// Query returns the trimmed query parameter name
func Query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// QueryCSV splits a comma-separated query parameter, dropping blanks
func QueryCSV(r *http.Request, name string) []string {
	return pstrings.SplitCSV(Query(r, name))
}

// QueryBool parses a boolean query parameter; def when absent
func QueryBool(r *http.Request, name string, def bool) (bool, error) {
	s := Query(r, name)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def, perr.WithField(perr.InvalidArgf("%s must be true or false", name), name)
	}
	return b, nil
}

// QueryUUID parses an optional uuid query parameter; "" when absent
func QueryUUID(r *http.Request, name string) (string, error) {
	s := Query(r, name)
	if s == "" {
		return "", nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", perr.WithField(perr.InvalidArgf("%s must be a uuid", name), name)
	}
	return id.String(), nil
}

// QueryTime parses an optional RFC 3339 instant; nil when absent
func QueryTime(r *http.Request, name string) (*time.Time, error) {
	s := Query(r, name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("%s must be an RFC 3339 time", name), name)
	}
	return &t, nil
}
