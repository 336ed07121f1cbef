// Package errors defines the failure taxonomy for promptdiff and small
// retry/recovery helpers shared across the tool.
//
// Every network or parse failure is converted at the boundary where it
// occurs into one of three kinds: ServiceError (the data host reported an
// update-pipeline failure), CatalogError (the version catalog is missing
// or unreadable), or ContentError (one or both prompt artifacts failed to
// fetch). Nothing propagates uncaught past those boundaries.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions
var (
	// ErrInvalidInput indicates invalid user input or configuration
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a resource was not found on the data host
	ErrNotFound = errors.New("not found")

	// ErrSessionClosed indicates use of a disposed diff session
	ErrSessionClosed = errors.New("diff session closed")

	// ErrShutdown indicates the system is shutting down
	ErrShutdown = errors.New("system shutting down")
)

// User-facing status messages. These are the exact strings shown in the
// status area; tests assert on them.
const (
	MsgPopulating     = "Data is being populated, please check back in a few minutes..."
	MsgVersionsFailed = "Failed to load versions"
	MsgPromptsFailed  = "Failed to load prompt files"
	MsgDiffFailed     = "Failed to load diff"
)

// ServiceError is an externally reported failure: the update pipeline
// published an error artifact. Terminal for the session; no diff view is
// attempted while it stands.
type ServiceError struct {
	Message string // Payload of the error artifact
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("Update service error: %s", e.Message)
}

// NewServiceError creates a ServiceError from the error artifact payload.
func NewServiceError(message string) *ServiceError {
	return &ServiceError{Message: message}
}

// CatalogError indicates the version catalog is missing, unreachable, or
// malformed. Terminal for the session until a reload.
type CatalogError struct {
	Message string // User-facing status message
	Err     error  // Underlying cause, may be nil
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogMissingError reports a catalog that is not yet published
// (a "not found" response from the data host).
func NewCatalogMissingError() *CatalogError {
	return &CatalogError{Message: MsgPopulating, Err: ErrNotFound}
}

// NewCatalogError wraps any other catalog load failure.
func NewCatalogError(err error) *CatalogError {
	return &CatalogError{Message: MsgVersionsFailed, Err: err}
}

// ContentError indicates one or both prompt artifacts failed to fetch.
// Whether it surfaces as an initial-load error or a refresh banner is
// decided by the controller, not here.
type ContentError struct {
	Version string // Version whose artifact failed, if known
	Err     error  // Underlying cause
}

func (e *ContentError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("failed to fetch prompt %s: %v", e.Version, e.Err)
	}
	return fmt.Sprintf("failed to fetch prompt: %v", e.Err)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// NewContentError creates a ContentError for the given version.
func NewContentError(version string, err error) *ContentError {
	return &ContentError{Version: version, Err: err}
}

// TransientError represents a temporary failure that can be retried
type TransientError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient error in %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError creates a new transient error
func NewTransientError(op string, err error) *TransientError {
	return &TransientError{Op: op, Err: err}
}

// PermanentError represents a non-recoverable failure; Retry gives up on
// it immediately.
type PermanentError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("permanent error in %s: %v", e.Op, e.Err)
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// NewPermanentError creates a new permanent error
func NewPermanentError(op string, err error) *PermanentError {
	return &PermanentError{Op: op, Err: err}
}

// UserMessage maps an error to the status message shown in the UI.
// Unrecognized errors fall back to the generic versions-load message.
func UserMessage(err error) string {
	var svc *ServiceError
	if errors.As(err, &svc) {
		return svc.Error()
	}
	var cat *CatalogError
	if errors.As(err, &cat) {
		return cat.Message
	}
	var content *ContentError
	if errors.As(err, &content) {
		return MsgPromptsFailed
	}
	return MsgVersionsFailed
}
