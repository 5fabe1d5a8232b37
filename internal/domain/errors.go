package domain

import "errors"

// Error kinds. Every domain error wraps exactly one of them so the delivery
// layer can pick a status code with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrAuth         = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" && e.Kind != nil {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Validation(msg string) *Error {
	return NewError(ErrValidation, msg)
}

// Message returns the client-facing message of err when it is a domain error.
func Message(err error) (string, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Error(), true
	}
	return "", false
}
