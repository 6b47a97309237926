package document

import (
	"errors"
	"fmt"
	"net/http"
)

type Code int

const (
	Validation Code = iota + 1
	NotFound
	MissingRelation
	Render
)

func (c Code) String() string {
	switch c {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case MissingRelation:
		return "missing_relation"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

func (c Code) HTTPStatus() int {
	switch c {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case MissingRelation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is returned by Generate for every failure. Msg is safe to show to
// end users, Err keeps the cause for operators.
type Error struct {
	Code         Code
	Msg          string
	AssignmentID int64
	Type         string
	Err          error
}

func newError(code Code, msg string, id int64, typ string, err error) *Error {
	return &Error{Code: code, Msg: msg, AssignmentID: id, Type: typ, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Msg, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind names the underlying cause, e.g. "*errors.errorString".
func (e *Error) Kind() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%T", e.Err)
}

func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
