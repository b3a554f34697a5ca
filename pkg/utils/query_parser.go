package utils

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

type QueryParams struct {
	Filters   map[string]string
	Search    string
	SortBy    string
	SortOrder string
	Limit     uint64
	Offset    uint64
	Page      uint64
}

// ParseQuery reads filter[x], search, sort, limit, offset and page.
// offset wins over page when both are given.
func ParseQuery(query url.Values) QueryParams {
	params := QueryParams{
		Filters:   make(map[string]string),
		Limit:     DefaultLimit,
		Page:      1,
		SortBy:    "requested_at",
		SortOrder: "desc",
	}

	for key, values := range query {
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") && len(values) > 0 && values[0] != "" {
			params.Filters[key[7:len(key)-1]] = values[0]
		}
	}

	if l, err := strconv.ParseUint(query.Get("limit"), 10, 64); err == nil && l > 0 {
		params.Limit = min(l, MaxLimit)
	}
	if o, err := strconv.ParseUint(query.Get("offset"), 10, 64); err == nil {
		params.Offset = o
		params.Page = o/params.Limit + 1
	} else if p, err := strconv.ParseUint(query.Get("page"), 10, 64); err == nil && p > 0 {
		params.Page = p
		params.Offset = (p - 1) * params.Limit
	}

	params.Search = strings.TrimSpace(query.Get("search"))

	if sort := query.Get("sort"); sort != "" {
		if strings.HasPrefix(sort, "-") {
			params.SortOrder = "desc"
			params.SortBy = sort[1:]
		} else {
			params.SortOrder = "asc"
			params.SortBy = sort
		}
	}
	return params
}
