// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError], plus a struct-tag bridge
// over go-playground/validator for request payloads.
//
// # Architecture
//
// This package is used in the domain layer only, never in storage.
// It ensures that business logic only operates on semantically valid data.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/comicshelf/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("price", err != nil, "Must be a number")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// ErrWithMessage returns a VALIDATION_ERROR [apperr.AppError] carrying message
// and every collected field error, or nil if all rules passed.
//
// Call it at the end of the chain.
func (v *Validator) ErrWithMessage(message string) error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(message, v.errs...)
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// # Struct Validation

// Violation is one failed struct-tag rule, keyed by the JSON field name.
type Violation struct {
	Field string
	Rule  string
	Param string
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

// engine returns the shared go-playground validator, reporting JSON field names.
func engine() *validator.Validate {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
	return structValidator
}

// Struct runs the `validate` tags of target and returns every violation in
// declaration order. A non-nil error means target itself was not validatable.
func Struct(target any) ([]Violation, error) {
	err := engine().Struct(target)
	if err == nil {
		return nil, nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil, fmt.Errorf("validate: %w", err)
	}

	violations := make([]Violation, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		violations = append(violations, Violation{
			Field: fieldError.Field(),
			Rule:  fieldError.Tag(),
			Param: fieldError.Param(),
		})
	}
	return violations, nil
}
