package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidChart, "bad element at index %d", 3)
	if err.Code != ErrCodeInvalidChart {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidChart)
	}
	if err.Message != "bad element at index 3" {
		t.Errorf("Message = %q", err.Message)
	}
	want := "INVALID_CHART: bad element at index 3"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("unexpected token")
	err := Wrap(ErrCodeInvalidChart, cause, "decode chart.toml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	want := "INVALID_CHART: decode chart.toml: unexpected token"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidScale, "length must be positive")

	if !Is(err, ErrCodeInvalidScale) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidScale) {
		t.Error("Is should not match plain errors")
	}

	// Code survives wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("load config: %w", err)
	if !Is(wrapped, ErrCodeInvalidScale) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidFormat, "png")); got != ErrCodeInvalidFormat {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeInvalidFormat)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidTicks, "delta must not be negative")
	if got := UserMessage(err); got != "delta must not be negative" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
