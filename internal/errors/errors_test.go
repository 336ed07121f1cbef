package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestServiceError_Message(t *testing.T) {
	err := NewServiceError("boom")
	want := "Update service error: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCatalogError_Messages(t *testing.T) {
	missing := NewCatalogMissingError()
	if missing.Message != MsgPopulating {
		t.Errorf("missing catalog message: got %q, want %q", missing.Message, MsgPopulating)
	}
	if !errors.Is(missing, ErrNotFound) {
		t.Error("expected missing catalog to wrap ErrNotFound")
	}

	generic := NewCatalogError(fmt.Errorf("connection refused"))
	if generic.Message != MsgVersionsFailed {
		t.Errorf("generic catalog message: got %q, want %q", generic.Message, MsgVersionsFailed)
	}
}

func TestContentError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("status 500")
	err := NewContentError("1.2.0", cause)
	if !errors.Is(err, cause) {
		t.Error("expected ContentError to wrap its cause")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"service error", NewServiceError("boom"), "Update service error: boom"},
		{"wrapped service error", fmt.Errorf("load: %w", NewServiceError("boom")), "Update service error: boom"},
		{"missing catalog", NewCatalogMissingError(), MsgPopulating},
		{"catalog failure", NewCatalogError(errors.New("eof")), MsgVersionsFailed},
		{"content failure", NewContentError("1.0.0", errors.New("status 500")), MsgPromptsFailed},
		{"unknown error", errors.New("weird"), MsgVersionsFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
