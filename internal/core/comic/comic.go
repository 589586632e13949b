// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comic manages the catalogue of comic book listings.

It owns the listing record, its create/update payloads, the query-string
filter and sort contract used by the listing endpoints, the record store
abstraction with its PostgreSQL implementation, and the HTTP handlers.

Core Responsibility:

  - Catalogue: One flat record per listing, keyed by a caller-supplied integer id.
  - Discovery: Equality filters on author, year, price and condition with a single sort key.
  - Pagination: Skip/limit pages with a total count taken under the same predicate.
*/
package comic

// # Domain Enums

// Condition is the physical state of a listed copy.
type Condition string

const (
	// ConditionNew is an unread copy.
	ConditionNew Condition = "new"

	// ConditionUsed is a second-hand copy.
	ConditionUsed Condition = "used"
)

// IsValid reports whether c is a recognised [Condition] value.
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionUsed:
		return true
	}
	return false
}

// # Core Entities

// Comic is a single listing in the catalogue.
//
// ID and BookName are each unique across the catalogue.
type Comic struct {
	ID                int64     `json:"id"`
	BookName          string    `json:"bookName"`
	AuthorName        string    `json:"authorName"`
	YearOfPublication int       `json:"yearOfPublication"`
	Price             float64   `json:"price"`
	Discount          float64   `json:"discount"`
	NumberOfPages     int       `json:"numberOfPages"`
	Condition         Condition `json:"condition"`
	Description       string    `json:"description"`
	Genre             string    `json:"genre"`
}

// # Field Identifiers

// JSON field names, shared by validation details, predicates and sort keys.
const (
	FieldID                = "id"
	FieldBookName          = "bookName"
	FieldAuthorName        = "authorName"
	FieldYearOfPublication = "yearOfPublication"
	FieldPrice             = "price"
	FieldDiscount          = "discount"
	FieldNumberOfPages     = "numberOfPages"
	FieldCondition         = "condition"
	FieldDescription       = "description"
	FieldGenre             = "genre"
)

// # Client Messages

const (
	MsgCreated      = "Comic book added successfully"
	MsgUpdated      = "Comic book updated successfully"
	MsgDeleted      = "Comic book deleted successfully."
	MsgRetrieved    = "Comic book details retrieved successfully."
	MsgListed       = "Comic books retrieved successfully."
	MsgNotFound     = "Comic book not found."
	MsgMissingField = "All required fields must be provided."
	MsgBadCondition = `Invalid condition. Must be either "new" or "used".`
	MsgBadQuery     = "Invalid query parameters."

	MsgCreateFailed = "Server error. Could not add comic book."
	MsgUpdateFailed = "Server error. Could not update comic book."
	MsgDeleteFailed = "Server error. Could not delete comic book."
	MsgGetFailed    = "Server error. Could not fetch comic book details."
	MsgListFailed   = "Server error. Could not fetch comic books."
)
