package types

import "fmt"

// RemoteAPIError represents a failure talking to a market, event or news API.
type RemoteAPIError struct {
	API        string // "gamma", "clob", "newsapi", "tavily"
	Op         string // operation being performed
	StatusCode int    // HTTP status, 0 if the call never completed
	Err        error
}

func (e *RemoteAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d: %v", e.API, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.API, e.Op, e.Err)
}

func (e *RemoteAPIError) Unwrap() error { return e.Err }

// LLMError represents a provider call or response-parsing failure.
type LLMError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *LLMError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("llm: %s: %v", e.Op, e.Err)
}

func (e *LLMError) Unwrap() error { return e.Err }

// StorageError represents a retrieval-index or journal read/write failure.
type StorageError struct {
	Path string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ExecutionError represents an order build, sign or submit failure.
// Execution failures are always surfaced to the operator and never retried.
type ExecutionError struct {
	Stage   string // "build", "sign", "submit"
	OrderID string
	Err     error
}

func (e *ExecutionError) Error() string {
	if e.OrderID != "" {
		return fmt.Sprintf("execution: %s (order %s): %v", e.Stage, e.OrderID, e.Err)
	}
	return fmt.Sprintf("execution: %s: %v", e.Stage, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
