package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusByKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Validation("x"), http.StatusBadRequest},
		{BadRequest("x"), http.StatusBadRequest},
		{Conflict("x"), http.StatusConflict},
		{Forbidden("x"), http.StatusForbidden},
		{Unauthorized("x"), http.StatusUnauthorized},
		{TooManyRequests("x"), http.StatusTooManyRequests},
		{Internal("x"), http.StatusInternalServerError},
		{Gone("x"), http.StatusGone},
		{New(KindUnknown, "x"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("kind %d: expected %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestKindAndCodeSurviveWrapping(t *testing.T) {
	base := Unauthorized("role does not match").WithCode(CodeRoleMismatch)
	wrapped := fmt.Errorf("sign in: %w", base)

	if !Is(wrapped, KindUnauthorized) {
		t.Fatalf("expected unauthorized kind through wrapping")
	}
	if !HasCode(wrapped, CodeRoleMismatch) {
		t.Fatalf("expected RoleMismatch code, got %q", GetCode(wrapped))
	}
	if HasCode(wrapped, CodeInvalidCredentials) {
		t.Fatalf("role mismatch must not look like invalid credentials")
	}
}

func TestPlainErrorsHaveNoKind(t *testing.T) {
	err := errors.New("boom")
	if GetKind(err) != KindUnknown {
		t.Fatalf("expected unknown kind")
	}
	if GetCode(err) != "" {
		t.Fatalf("expected empty code")
	}
}

func TestErrorStringIncludesOpAndCause(t *testing.T) {
	err := Wrap(KindInternal, "database failure", errors.New("socket closed")).WithOp("bookings.Create")
	want := "bookings.Create: database failure: socket closed"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
	if !errors.Is(err, err.Err) {
		t.Fatalf("expected Unwrap to expose the cause")
	}
}
