package http

import (
	"net/http"
	"strconv"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// parsePageRequest reads page, size, sortBy and sortDir. Missing values are
// left zero and defaulted by the query handlers.
func parsePageRequest(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()
	req := domain.PageRequest{
		SortBy:  q.Get("sortBy"),
		SortDir: q.Get("sortDir"),
	}

	var err error
	if req.Page, err = intParam(q.Get("page")); err != nil {
		return req, domain.InvalidInputf("page must be an integer")
	}
	if req.Size, err = intParam(q.Get("size")); err != nil {
		return req, domain.InvalidInputf("size must be an integer")
	}
	if req.Size == 0 && q.Get("size") != "" {
		return req, domain.InvalidInputf("size must be positive")
	}
	return req, nil
}

func intParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
