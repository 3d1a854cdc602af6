package service

import "errors"

// Error kinds. Handlers map these onto HTTP statuses with errors.Is.
var (
	ErrNotFound   = errors.New("not_found")
	ErrValidation = errors.New("validation")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

// Error pairs an error kind with a caller-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func NotFound(msg string) error   { return &Error{Kind: ErrNotFound, Message: msg} }
func Validation(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }
func Conflict(msg string) error   { return &Error{Kind: ErrConflict, Message: msg} }
func Forbidden(msg string) error  { return &Error{Kind: ErrForbidden, Message: msg} }
