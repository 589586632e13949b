// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
package pagination

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 2
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1

	// ParamPage and ParamLimit are the query-string keys read by [Parse].
	ParamPage  = "page"
	ParamLimit = "limit"
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of matching records to skip: (Page-1) * Limit.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	TotalCount  int `json:"totalCount"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// NewMeta constructs pagination metadata for a response.
//
// TotalPages is ceil(total / limit); a zero total yields zero pages.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = total / limit
		if total%limit != 0 {
			totalPages++
		}
	}

	return Meta{
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages,
	}
}

// ParamError reports a page or limit value that is not a positive integer.
type ParamError struct {
	Param string
	Value string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("pagination: %s must be a positive integer, got %q", e.Param, e.Value)
}

// Parse reads "page" and "limit" from query values.
//
// # Validation
//
// Absent or empty values fall back to [DefaultPage] and [DefaultLimit].
// Anything else must be a positive integer; the first offending parameter is
// returned as a [*ParamError]. There is no upper bound on limit, but a page
// whose offset would not fit in an int is rejected.
func Parse(values url.Values) (Params, error) {
	page, err := parsePositive(values, ParamPage, DefaultPage)
	if err != nil {
		return Params{}, err
	}

	limit, err := parsePositive(values, ParamLimit, DefaultLimit)
	if err != nil {
		return Params{}, err
	}

	if page-1 > math.MaxInt/limit {
		return Params{}, &ParamError{Param: ParamPage, Value: values.Get(ParamPage)}
	}

	return Params{Page: page, Limit: limit}, nil
}

// parsePositive parses a single positive integer query parameter with a fallback default.
func parsePositive(values url.Values, key string, defaultVal int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &ParamError{Param: key, Value: raw}
	}

	return n, nil
}
