// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"errors"
	"net/url"

	"github.com/taibuivan/comicshelf/internal/platform/validate"
	"github.com/taibuivan/comicshelf/pkg/pagination"
	"github.com/taibuivan/comicshelf/pkg/query"
)

// # Search & Filtering

// Filter holds the optional equality filters of a listing request.
// A nil field is absent and does not constrain the result.
type Filter struct {
	AuthorName        *string
	YearOfPublication *int
	Price             *float64
	Condition         *Condition
}

// Predicate is an equality filter keyed by JSON field name. Keys are ANDed.
type Predicate map[string]any

// BuildPredicate keeps only the filters that are present.
func BuildPredicate(filter Filter) Predicate {
	predicate := Predicate{}

	if filter.AuthorName != nil {
		predicate[FieldAuthorName] = *filter.AuthorName
	}
	if filter.YearOfPublication != nil {
		predicate[FieldYearOfPublication] = *filter.YearOfPublication
	}
	if filter.Price != nil {
		predicate[FieldPrice] = *filter.Price
	}
	if filter.Condition != nil {
		predicate[FieldCondition] = string(*filter.Condition)
	}

	return predicate
}

// # Sorting

// Direction is the ordering of a [Sort]: +1 ascending, -1 descending.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// DefaultSortField is used when the request names no sort field.
const DefaultSortField = FieldBookName

// Sort is a single-key ordering. There is no secondary key.
type Sort struct {
	Field     string
	Direction Direction
}

// ResolveSort maps a field name and a direction token to a [Sort].
//
// Only "desc" selects descending order; any other token is ascending. The
// field name is passed through and the record store decides whether it exists.
func ResolveSort(sortBy, sortOrder string) Sort {
	if sortBy == "" {
		sortBy = DefaultSortField
	}

	direction := Ascending
	if sortOrder == "desc" {
		direction = Descending
	}

	return Sort{Field: sortBy, Direction: direction}
}

// # Query-String Parsing

// Query-string keys accepted by the listing endpoints.
const (
	ParamSortBy    = "sortBy"
	ParamSortOrder = "sortOrder"
)

// ListQuery is the parsed form of a listing request.
type ListQuery struct {
	Filter Filter
	Sort   Sort
	Page   pagination.Params
}

// ParseFilter reads the filter and sort parameters.
//
// yearOfPublication must be an integer and price a number when present.
func ParseFilter(values url.Values) (Filter, Sort, error) {
	validator := &validate.Validator{}

	year, err := query.OptionalInt(values, FieldYearOfPublication)
	validator.Custom(FieldYearOfPublication, err != nil, "Must be an integer")

	price, err := query.OptionalFloat(values, FieldPrice)
	validator.Custom(FieldPrice, err != nil, "Must be a number")

	if err := validator.ErrWithMessage(MsgBadQuery); err != nil {
		return Filter{}, Sort{}, err
	}

	filter := Filter{
		AuthorName:        query.OptionalString(values, FieldAuthorName),
		YearOfPublication: year,
		Price:             price,
	}
	if condition := query.OptionalString(values, FieldCondition); condition != nil {
		value := Condition(*condition)
		filter.Condition = &value
	}

	sort := ResolveSort(
		query.StringOr(values, ParamSortBy, DefaultSortField),
		query.StringOr(values, ParamSortOrder, "asc"),
	)

	return filter, sort, nil
}

// ParseListQuery reads filter, sort and page parameters.
func ParseListQuery(values url.Values) (ListQuery, error) {
	filter, sort, err := ParseFilter(values)
	if err != nil {
		return ListQuery{}, err
	}

	page, err := pagination.Parse(values)
	if err != nil {
		var paramErr *pagination.ParamError
		field := pagination.ParamPage
		if errors.As(err, &paramErr) {
			field = paramErr.Param
		}
		return ListQuery{}, (&validate.Validator{}).
			Custom(field, true, "Must be a positive integer").
			ErrWithMessage(MsgBadQuery)
	}

	return ListQuery{Filter: filter, Sort: sort, Page: page}, nil
}
