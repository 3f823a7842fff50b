/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package common

import (
	"errors"

	perrors "github.com/pkg/errors"
)

// BaseError defines the common error reporting struct for all other errors
// defined in this package
type BaseError struct {
	message string
}

// Error implements the Error interface for all structures that are derived
// from this one.
func (in BaseError) Error() string {
	return in.message
}

// SemanticCheckFailure defines an error to be used when the data returned by
// the system is internally inconsistent.  It is not a transport failure;
// the message is intended to be displayed to the operator unchanged.
type SemanticCheckFailure struct {
	BaseError
}

// ErrMissingSystemResource defines an error to be used when reporting that
// an operation is unable to find a required resource from the system API.
type ErrMissingSystemResource struct {
	BaseError
}

// ErrUserDataError defines an error to be used when reporting that an operation
// is unable to continue because the requested configuration is incorrect or
// incomplete.
type ErrUserDataError struct {
	BaseError
}

// ValidationError defines a new error type used to differentiate data
// validation errors from other types of errors.
type ValidationError struct {
	BaseError
}

// ClientError defines an error to be used on an semantic error encountered
// while attempting to build a platform client object.
type ClientError struct {
	BaseError
}

// NewSemanticCheckFailure defines a constructor for the SemanticCheckFailure
// error type.
func NewSemanticCheckFailure(msg string) error {
	return SemanticCheckFailure{BaseError{msg}}
}

// NewMissingSystemResource defines a constructor for the
// ErrMissingSystemResource error type.
func NewMissingSystemResource(msg string) error {
	return ErrMissingSystemResource{BaseError{msg}}
}

// NewUserDataError defines a constructor for the ErrUserDataError error type.
func NewUserDataError(msg string) error {
	return ErrUserDataError{BaseError{msg}}
}

// NewValidationError defines a constructor for the ValidationError error type.
func NewValidationError(msg string) error {
	return ValidationError{BaseError{msg}}
}

// NewClientError defines a wrapper to correctly instantiate a platform client
// error.
func NewClientError(msg string) error {
	return perrors.WithStack(ClientError{BaseError{msg}})
}

// IsSemanticCheckFailure returns whether the error, or any error that it
// wraps, is a SemanticCheckFailure.
func IsSemanticCheckFailure(err error) bool {
	var target SemanticCheckFailure
	return errors.As(err, &target)
}
