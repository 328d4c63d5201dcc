package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// QueryError marks a failed read against the route store. Op names the
// pipeline step ("fetching route names", "fetching data").
type QueryError struct {
	Op  string
	Err error
}

func (e QueryError) Error() string {
	if e.Err == nil {
		return "error " + e.Op
	}
	return fmt.Sprintf("error %s: %v", e.Op, e.Err)
}

func (e QueryError) Unwrap() error { return e.Err }

// FilterError reports a structural problem with a fetched table, such as a
// missing column.
type FilterError struct {
	Column string
	Err    error
}

func (e FilterError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("error filtering data: column %q not present", e.Column)
	}
	if e.Err != nil {
		return fmt.Sprintf("error filtering data: %v", e.Err)
	}
	return "error filtering data"
}

func (e FilterError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsQuery(err error) bool {
	var target QueryError
	return errors.As(err, &target)
}

func IsFilter(err error) bool {
	var target FilterError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
