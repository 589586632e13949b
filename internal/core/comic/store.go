// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import "context"

// # Comic Data Access

// Window bounds a find to a page of the ordered result.
type Window struct {
	Skip  int
	Limit int
}

// Repository defines the data access contract for the catalogue.
type Repository interface {

	/*
		Count returns the number of records matching predicate.

		Parameters:
		  - context: context.Context
		  - predicate: Predicate (equality filters, ANDed)

		Returns:
		  - int: Matching record count
		  - error: Database retrieval failures
	*/
	Count(context context.Context, predicate Predicate) (int, error)

	/*
		Find returns the records matching predicate in sort order.

		Parameters:
		  - context: context.Context
		  - predicate: Predicate
		  - sort: Sort (single key)
		  - window: *Window (nil returns the whole result)

		Returns:
		  - []*Comic: Matching records, never nil
		  - error: Validation error for an unknown sort field, or database failures
	*/
	Find(context context.Context, predicate Predicate, sort Sort, window *Window) ([]*Comic, error)

	/*
		FindByID returns the record with the given logical id.

		Returns:
		  - *Comic: The stored record
		  - error: dberr.ErrNotFound if missing
	*/
	FindByID(context context.Context, id int64) (*Comic, error)

	/*
		Create inserts a new record and refreshes comic with the stored values.

		Returns:
		  - error: Storage or uniqueness failures
	*/
	Create(context context.Context, comic *Comic) error

	/*
		Update applies a partial update to the record with the given id and
		returns the record after the update.

		Returns:
		  - *Comic: The updated record
		  - error: dberr.ErrNotFound if missing, storage failures otherwise
	*/
	Update(context context.Context, id int64, patch Patch) (*Comic, error)

	/*
		Delete removes the record with the given id and returns it.

		Returns:
		  - *Comic: The removed record
		  - error: dberr.ErrNotFound if missing
	*/
	Delete(context context.Context, id int64) (*Comic, error)
}
