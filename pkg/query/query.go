// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses optional scalar values out of URL query parameters.
//
// A parameter is present when it appears with a non-empty value. Absent
// parameters yield a nil pointer, so a legitimate zero ("price=0") is never
// confused with "not supplied".
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// OptionalString returns the trimmed value of key, or nil when absent or blank.
func OptionalString(values url.Values, key string) *string {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}

// OptionalInt parses key as a base-10 integer. It returns (nil, nil) when absent.
func OptionalInt(values url.Values, key string) (*int, error) {
	raw := OptionalString(values, key)
	if raw == nil {
		return nil, nil
	}

	n, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// OptionalFloat parses key as a finite float64. It returns (nil, nil) when absent.
func OptionalFloat(values url.Values, key string) (*float64, error) {
	raw := OptionalString(values, key)
	if raw == nil {
		return nil, nil
	}

	f, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &strconv.NumError{Func: "ParseFloat", Num: *raw, Err: strconv.ErrSyntax}
	}
	return &f, nil
}

// StringOr returns the trimmed value of key, or def when absent or blank.
func StringOr(values url.Values, key, def string) string {
	if raw := OptionalString(values, key); raw != nil {
		return *raw
	}
	return def
}
