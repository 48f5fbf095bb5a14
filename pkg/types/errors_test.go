package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
	}{
		{"remote-api-error", &RemoteAPIError{API: "gamma", Op: "list-markets", StatusCode: 502, Err: cause}},
		{"llm-error", &LLMError{Op: "chat", StatusCode: 429, Err: cause}},
		{"storage-error", &StorageError{Path: "/tmp/index.db", Op: "query", Err: cause}},
		{"execution-error", &ExecutionError{Stage: "submit", OrderID: "abc", Err: cause}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, cause) {
				t.Errorf("errors.Is(%T, cause) = false, want true", tt.err)
			}
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !errors.Is(wrapped, cause) {
				t.Error("cause lost after a second wrap")
			}
			if tt.err.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}
