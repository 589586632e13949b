// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"github.com/taibuivan/comicshelf/internal/platform/apperr"
	"github.com/taibuivan/comicshelf/internal/platform/validate"
	"github.com/taibuivan/comicshelf/pkg/pointer"
)

// # Request Payloads

// CreateInput is the inbound payload for a new listing.
//
// Every field is a pointer so that presence is explicit: a price or discount
// of 0 is a value, a missing key is absence.
type CreateInput struct {
	ID                *int64     `json:"id"`
	BookName          *string    `json:"bookName" validate:"required,min=1"`
	AuthorName        *string    `json:"authorName" validate:"required,min=1"`
	YearOfPublication *int       `json:"yearOfPublication"`
	Price             *float64   `json:"price"`
	Discount          *float64   `json:"discount"`
	NumberOfPages     *int       `json:"numberOfPages"`
	Condition         *Condition `json:"condition" validate:"required,min=1"`
	Description       *string    `json:"description"`
	Genre             *string    `json:"genre" validate:"required,min=1"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	ID                *int64     `json:"id"`
	BookName          *string    `json:"bookName" validate:"omitnil,min=1"`
	AuthorName        *string    `json:"authorName" validate:"omitnil,min=1"`
	YearOfPublication *int       `json:"yearOfPublication"`
	Price             *float64   `json:"price"`
	Discount          *float64   `json:"discount"`
	NumberOfPages     *int       `json:"numberOfPages"`
	Condition         *Condition `json:"condition"`
	Description       *string    `json:"description"`
	Genre             *string    `json:"genre" validate:"omitnil,min=1"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.ID == nil && p.BookName == nil && p.AuthorName == nil &&
		p.YearOfPublication == nil && p.Price == nil && p.Discount == nil &&
		p.NumberOfPages == nil && p.Condition == nil && p.Description == nil &&
		p.Genre == nil
}

// # Validation

// Validate checks presence of every required field, then the condition enum.
//
// Missing fields win over a bad condition, and all of them are listed in the
// error details. An empty string counts as missing.
func (in CreateInput) Validate() error {
	validator := &validate.Validator{}

	// Numeric presence is checked by pointer so that zero stays a legal value.
	validator.
		Custom(FieldID, in.ID == nil, "This field is required").
		Custom(FieldYearOfPublication, in.YearOfPublication == nil, "This field is required").
		Custom(FieldPrice, in.Price == nil, "This field is required").
		Custom(FieldNumberOfPages, in.NumberOfPages == nil, "This field is required")

	violations, err := validate.Struct(in)
	if err != nil {
		return apperr.Internal(err)
	}
	for _, violation := range violations {
		validator.Custom(violation.Field, true, "This field is required")
	}

	if err := validator.ErrWithMessage(MsgMissingField); err != nil {
		return err
	}

	return checkCondition(in.Condition)
}

// Validate checks the fields that are present in the patch.
func (p Patch) Validate() error {
	violations, err := validate.Struct(p)
	if err != nil {
		return apperr.Internal(err)
	}

	validator := &validate.Validator{}
	for _, violation := range violations {
		validator.Custom(violation.Field, true, "This field is required")
	}

	if err := validator.ErrWithMessage(MsgMissingField); err != nil {
		return err
	}

	return checkCondition(p.Condition)
}

// checkCondition rejects a present condition outside the enum.
func checkCondition(condition *Condition) error {
	if condition == nil {
		return nil
	}

	return (&validate.Validator{}).
		OneOf(FieldCondition, string(*condition), string(ConditionNew), string(ConditionUsed)).
		ErrWithMessage(MsgBadCondition)
}

// Comic builds the record, applying defaults for discount (0) and description ("").
//
// Callers must run [CreateInput.Validate] first.
func (in CreateInput) Comic() *Comic {
	return &Comic{
		ID:                pointer.Val(in.ID),
		BookName:          pointer.Val(in.BookName),
		AuthorName:        pointer.Val(in.AuthorName),
		YearOfPublication: pointer.Val(in.YearOfPublication),
		Price:             pointer.Val(in.Price),
		Discount:          pointer.Fallback(in.Discount, 0),
		NumberOfPages:     pointer.Val(in.NumberOfPages),
		Condition:         pointer.Val(in.Condition),
		Description:       pointer.Fallback(in.Description, ""),
		Genre:             pointer.Val(in.Genre),
	}
}

// Apply returns a copy of comic with the patch applied.
func (p Patch) Apply(comic Comic) Comic {
	comic.ID = pointer.Fallback(p.ID, comic.ID)
	comic.BookName = pointer.Fallback(p.BookName, comic.BookName)
	comic.AuthorName = pointer.Fallback(p.AuthorName, comic.AuthorName)
	comic.YearOfPublication = pointer.Fallback(p.YearOfPublication, comic.YearOfPublication)
	comic.Price = pointer.Fallback(p.Price, comic.Price)
	comic.Discount = pointer.Fallback(p.Discount, comic.Discount)
	comic.NumberOfPages = pointer.Fallback(p.NumberOfPages, comic.NumberOfPages)
	comic.Condition = pointer.Fallback(p.Condition, comic.Condition)
	comic.Description = pointer.Fallback(p.Description, comic.Description)
	comic.Genre = pointer.Fallback(p.Genre, comic.Genre)
	return comic
}

// Assignments lists the patched fields as (JSON field name, value) pairs in
// a stable order. The record store turns them into column assignments.
func (p Patch) Assignments() []Assignment {
	var out []Assignment
	add := func(field string, present bool, value any) {
		if present {
			out = append(out, Assignment{Field: field, Value: value})
		}
	}

	add(FieldID, p.ID != nil, pointer.Val(p.ID))
	add(FieldBookName, p.BookName != nil, pointer.Val(p.BookName))
	add(FieldAuthorName, p.AuthorName != nil, pointer.Val(p.AuthorName))
	add(FieldYearOfPublication, p.YearOfPublication != nil, pointer.Val(p.YearOfPublication))
	add(FieldPrice, p.Price != nil, pointer.Val(p.Price))
	add(FieldDiscount, p.Discount != nil, pointer.Val(p.Discount))
	add(FieldNumberOfPages, p.NumberOfPages != nil, pointer.Val(p.NumberOfPages))
	add(FieldCondition, p.Condition != nil, string(pointer.Val(p.Condition)))
	add(FieldDescription, p.Description != nil, pointer.Val(p.Description))
	add(FieldGenre, p.Genre != nil, pointer.Val(p.Genre))
	return out
}

// Assignment is one field set by a [Patch].
type Assignment struct {
	Field string
	Value any
}
