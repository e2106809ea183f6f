package models

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingField    = errors.New("missing required field")
	ErrKindMismatch    = errors.New("catalog item kind mismatch")
	ErrInvalidAmount   = errors.New("ingredient amount must not be negative")
	ErrPaymentMethod   = errors.New("unknown payment method")
	ErrNoSelection     = errors.New("no ingredient selection in progress")
	ErrNotFound        = errors.New("not found")
	ErrIndexOutOfRange = errors.New("line item index out of range")
	ErrNetwork         = errors.New("network error")
	ErrConflict        = errors.New("conflict")
	ErrRejected        = errors.New("rejected by backend")
)

// ValidationError rejects operator input. Reason is one of the sentinels
// above.
type ValidationError struct {
	Field  string
	Reason error
	Detail string
}

func (e *ValidationError) Error() string {
	msg := e.Reason.Error()
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ValidationError) Unwrap() []error { return []error{ErrValidation, e.Reason} }

func Invalid(field string, reason error, detail string) error {
	return &ValidationError{Field: field, Reason: reason, Detail: detail}
}

// NotFoundError names a missing item. Detail, when set, is the backend's
// own message, e.g. for an unknown ingredient inside a product write.
type NotFoundError struct {
	Entity string
	ID     int
	Detail string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError is a write the backend refused against stored data, such as
// deleting an item that sales still reference.
type ConflictError struct {
	Entity string
	ID     int
	Detail string
}

func (e *ConflictError) Error() string {
	msg := e.Entity
	if e.ID != 0 {
		msg += " " + strconv.Itoa(e.ID)
	}
	if e.Detail != "" {
		return msg + ": " + e.Detail
	}
	return msg + ": conflict"
}
func (e *ConflictError) Unwrap() error { return ErrConflict }

type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Len)
}
func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// NetworkError is a failed backend call. Status is 0 when no response
// arrived.
type NetworkError struct {
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *NetworkError) Error() string {
	msg := e.Op + ": "
	switch {
	case e.Err != nil:
		msg += e.Err.Error()
	case e.Status != 0:
		msg += fmt.Sprintf("backend returned %d", e.Status)
	default:
		msg += "request failed"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *NetworkError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}
