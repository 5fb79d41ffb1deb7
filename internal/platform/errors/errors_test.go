package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeGone, http.StatusGone},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCode(999), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatusCode(tc.code); got != tc.want {
			t.Fatalf("HTTPStatusCode(%s) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestCodeString(t *testing.T) {
	if ErrorCodeGone.String() != "gone" || ErrorCodeInvalidArgument.String() != "invalid_argument" {
		t.Fatalf("unexpected names %q %q", ErrorCodeGone, ErrorCodeInvalidArgument)
	}
	if ErrorCode(999).String() != "code(999)" {
		t.Fatalf("unknown code name = %q", ErrorCode(999).String())
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrs.New("socket closed")
	err := Wrap(cause, ErrorCodeUnavailable, "clickhouse down")

	if !stderrs.Is(err, cause) {
		t.Fatalf("errors.Is lost the cause")
	}
	if err.Error() != "clickhouse down: socket closed" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if Root(fmt.Errorf("outer: %w", err)) != cause {
		t.Fatalf("Root did not reach the cause")
	}
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
}

func TestWire(t *testing.T) {
	err := WithField(InvalidArgf("date must be YYYY-MM-DD"), "date")
	w := WireFrom(fmt.Errorf("handler: %w", err))
	if w.Code != ErrorCodeInvalidArgument || w.Reason != "invalid_argument" || w.Field != "date" {
		t.Fatalf("wire = %+v", w)
	}
	if w.Message != "date must be YYYY-MM-DD" {
		t.Fatalf("wire message leaked wrapping: %q", w.Message)
	}

	foreign := WireFrom(stderrs.New("raw"))
	if foreign.Code != ErrorCodeUnknown || foreign.Message != "raw" {
		t.Fatalf("foreign wire = %+v", foreign)
	}
	if (WireFrom(nil) != Wire{}) {
		t.Fatalf("nil wire should be zero")
	}
}

func TestHTTP(t *testing.T) {
	status, w := HTTP(Gonef("invitation expired"))
	if status != http.StatusGone || w.Reason != "gone" {
		t.Fatalf("HTTP = %d %+v", status, w)
	}
	if status, _ := HTTP(nil); status != http.StatusOK {
		t.Fatalf("HTTP(nil) status = %d", status)
	}
}

func TestMutatorsCopy(t *testing.T) {
	base := Forbiddenf("owner only")
	tagged := WithOp(WithField(base, "baby_id"), "babies.update")

	e, _ := As(tagged)
	if e.Field() != "baby_id" || e.Op() != "babies.update" {
		t.Fatalf("mutators not applied: %+v", e)
	}
	orig, _ := As(base)
	if orig.Field() != "" || orig.Op() != "" {
		t.Fatalf("mutators changed the original")
	}
	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign {
		t.Fatalf("foreign errors should pass through")
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(NotFoundf("baby %s", "b1"), ErrorCodeNotFound) {
		t.Fatalf("IsCode not found")
	}
	if IsCode(nil, ErrorCodeUnknown) {
		t.Fatalf("nil error has no code")
	}
	if CodeOf(stderrs.New("x")) != ErrorCodeUnknown {
		t.Fatalf("foreign code should be unknown")
	}
}
