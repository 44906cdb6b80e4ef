package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCodeForStatus(t *testing.T) {
	t.Parallel()

	cases := map[int]Code{
		http.StatusUnauthorized:        CodeUnauthorized,
		http.StatusForbidden:           CodeForbidden,
		http.StatusNotFound:            CodeNotFound,
		http.StatusConflict:            CodeConflict,
		http.StatusBadRequest:          CodeValidation,
		http.StatusUnprocessableEntity: CodeValidation,
		http.StatusInternalServerError: CodeServer,
		http.StatusServiceUnavailable:  CodeServer,
		http.StatusTeapot:              CodeInternal,
	}
	for status, want := range cases {
		if got := CodeForStatus(status); got != want {
			t.Fatalf("status %d: expected %s, got %s", status, want, got)
		}
	}
}

func TestUserMessagePrecedence(t *testing.T) {
	t.Parallel()

	err := New(CodeValidation, "pincode is required")
	if msg := err.UserMessage(); msg != "pincode is required" {
		t.Fatalf("expected server message verbatim, got %q", msg)
	}

	err = New(CodeNetwork, "dial tcp: connection refused")
	if msg := err.UserMessage(); msg != "network error, please try again" {
		t.Fatalf("expected generic fallback for network errors, got %q", msg)
	}

	err = New(CodeServer, "")
	if msg := err.UserMessage(); msg != "server error, please try again" {
		t.Fatalf("expected fallback when message empty, got %q", msg)
	}
}

func TestWrapPreservesChain(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("disk full")
	err := Wrap(CodeStorage, cause, "persist cart")

	typed := As(err)
	if typed == nil || typed.Code() != CodeStorage {
		t.Fatalf("expected typed storage error, got %v", err)
	}
	if typed.Unwrap() != cause {
		t.Fatal("expected cause to be preserved")
	}

	dump := Dump(err)
	if dump.Code != CodeStorage || len(dump.Chain) != 2 {
		t.Fatalf("unexpected dump: %+v", dump)
	}
}
