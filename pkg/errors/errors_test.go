package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unsupported format %q", "gif")
	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %s", err.Code)
	}
	if err.Message != `unsupported format "gif"` {
		t.Errorf("Message = %s", err.Message)
	}
	if err.Error() != `INVALID_FORMAT: unsupported format "gif"` {
		t.Errorf("Error() = %s", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidDataset, cause, "load %s", "family.json")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should unwrap to cause")
	}
	if want := "INVALID_DATASET: load family.json: unexpected EOF"; err.Error() != want {
		t.Errorf("Error() = %s, want %s", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"Direct", New(ErrCodeNodeNotFound, "x"), ErrCodeNodeNotFound, true},
		{"OtherCode", New(ErrCodeNodeNotFound, "x"), ErrCodeInvalidTerm, false},
		{"WrappedByFmt", fmt.Errorf("handler: %w", New(ErrCodeInvalidTerm, "x")), ErrCodeInvalidTerm, true},
		{"Plain", errors.New("x"), ErrCodeInternal, false},
		{"Nil", nil, ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodeInvalidConfig, "bad debounce"))
	if GetCode(err) != ErrCodeInvalidConfig {
		t.Errorf("GetCode = %s", GetCode(err))
	}
	if UserMessage(err) != "bad debounce" {
		t.Errorf("UserMessage = %s", UserMessage(err))
	}
	plain := errors.New("boom")
	if GetCode(plain) != "" || UserMessage(plain) != "boom" {
		t.Error("plain errors should pass through")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidTerm, "x"), http.StatusBadRequest},
		{New(ErrCodeInvalidNodeID, "x"), http.StatusBadRequest},
		{New(ErrCodeInvalidFormat, "x"), http.StatusBadRequest},
		{New(ErrCodeNodeNotFound, "x"), http.StatusNotFound},
		{New(ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{New(ErrCodeInternal, "x"), http.StatusInternalServerError},
		{errors.New("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
