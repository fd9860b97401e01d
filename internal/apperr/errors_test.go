package apperr

import (
	"errors"
	"testing"
)

func TestWrapKeepsSentinel(t *testing.T) {
	err := Wrap(ErrInsufficientStock, "warehouse %d product %d has %d, need %d", 1, 2, 3, 6)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatal("wrapped error lost its sentinel")
	}
	want := "insufficient stock: warehouse 1 product 2 has 3, need 6"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Wrap(ErrValidation, "bad field"), 400},
		{Wrap(ErrPermissionDenied, "nope"), 403},
		{Wrap(ErrNotFound, "gone"), 404},
		{Wrap(ErrInsufficientStock, "short"), 409},
		{Wrap(ErrDuplicateStockRow, "dup"), 409},
		{Wrap(ErrInvalidStateTransition, "decided"), 409},
		{Wrap(ErrReferentialIntegrity, "referenced"), 409},
		{errors.New("disk on fire"), 500},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
