package domain

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", QueryError{Op: "fetch data", Err: sql.ErrConnDone})

	if !IsQuery(wrapped) {
		t.Fatalf("expected wrapped QueryError to be detected")
	}
	if IsValidation(wrapped) || IsFilter(wrapped) || IsNotFound(wrapped) {
		t.Fatalf("QueryError matched another class")
	}
	if want := "error fetch data: sql: connection is already closed"; (QueryError{Op: "fetch data", Err: sql.ErrConnDone}).Error() != want {
		t.Fatalf("unexpected message %q", QueryError{Op: "fetch data", Err: sql.ErrConnDone}.Error())
	}
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ValidationError{Field: "sort", Msg: "must be Low to High or High to Low"}, "sort: must be Low to High or High to Low"},
		{ValidationError{Field: "route_name"}, "invalid route_name"},
		{ValidationError{}, "validation error"},
		{FilterError{Column: "Bus_Type"}, `error filtering data: column "Bus_Type" not present`},
		{NotFoundError{Resource: "route"}, "route not found"},
		{InternalError{}, "internal error"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("got %q want %q", got, tc.want)
		}
	}
}
