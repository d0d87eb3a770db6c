package sacloud

import (
	"encoding/json"
	"errors"
	"fmt"
)

// StatusErrorKind is the semantic classification of a non-2xx HTTP response.
type StatusErrorKind string

const (
	StatusBadRequest           StatusErrorKind = "bad_request"
	StatusUnauthorized         StatusErrorKind = "unauthorized"
	StatusForbidden            StatusErrorKind = "forbidden"
	StatusNotFound             StatusErrorKind = "not_found"
	StatusMethodNotAllowed     StatusErrorKind = "method_not_allowed"
	StatusNotAcceptable        StatusErrorKind = "not_acceptable"
	StatusRequestTimeout       StatusErrorKind = "request_timeout"
	StatusConflict             StatusErrorKind = "conflict"
	StatusLengthRequired       StatusErrorKind = "length_required"
	StatusPayloadTooLarge      StatusErrorKind = "payload_too_large"
	StatusUnsupportedMediaType StatusErrorKind = "unsupported_media_type"
	StatusInternalServerError  StatusErrorKind = "internal_server_error"
	StatusServiceUnavailable   StatusErrorKind = "service_unavailable"
	StatusUnknown              StatusErrorKind = "unknown_status_code"
)

// StatusError is an HTTP response the provider answered with a non-success
// status code. The request path and body are preserved for diagnosis.
type StatusError struct {
	Kind       StatusErrorKind `json:"kind"`
	StatusCode int             `json:"status_code"`
	Path       string          `json:"path"`
	Body       json.RawMessage `json:"body,omitempty"`
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s (%d) on %s", e.Kind, e.StatusCode, e.Path)
}

// Is matches StatusErrors by kind, so callers can probe with
// errors.Is(err, &StatusError{Kind: StatusNotFound}).
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// IsNotFound reports whether err is the provider saying the resource does not
// exist. The delete-wait loop treats this as its success condition.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Kind == StatusNotFound
}

// RequestError is a transport-level failure: the request never produced an
// HTTP response (connection, DNS, TLS, context cancellation).
type RequestError struct {
	Path string
	Err  error
}

func (e *RequestError) Error() string { return fmt.Sprintf("request to %s failed: %v", e.Path, e.Err) }
func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError is a response body that was not the JSON we were promised.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response json from %s: %v", e.Path, e.Err)
}
func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidStatusError is a response envelope whose success marker ("is_ok" or
// "Success") was missing its expected type or indicated failure, regardless
// of the HTTP status code.
type InvalidStatusError struct {
	Path     string          `json:"path"`
	Field    string          `json:"field"`
	Value    json.RawMessage `json:"value,omitempty"`
	Envelope json.RawMessage `json:"envelope,omitempty"`
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("response from %s has invalid %s marker: %s", e.Path, e.Field, e.Value)
}

// InvalidResourceError is a response envelope missing the resource object
// under its expected singular key.
type InvalidResourceError struct {
	Path string
	Key  string
}

func (e *InvalidResourceError) Error() string {
	return fmt.Sprintf("response from %s has no %q resource object", e.Path, e.Key)
}

// SearchErrorReason says which part of a search response was malformed.
type SearchErrorReason string

const (
	SearchInvalidTotal SearchErrorReason = "invalid_total"
	SearchInvalidFrom  SearchErrorReason = "invalid_from"
	SearchFromMismatch SearchErrorReason = "from_mismatch"
	SearchInvalidCount SearchErrorReason = "invalid_count"
	SearchInvalidArray SearchErrorReason = "invalid_resource_array"
)

// SearchError is a search response violating the pagination contract. Raw
// carries the offending value for diagnosis.
type SearchError struct {
	Path     string            `json:"path"`
	Reason   SearchErrorReason `json:"reason"`
	Raw      json.RawMessage   `json:"raw,omitempty"`
	WantFrom uint64            `json:"want_from,omitempty"`
	GotFrom  uint64            `json:"got_from,omitempty"`
}

func (e *SearchError) Error() string {
	if e.Reason == SearchFromMismatch {
		return fmt.Sprintf("invalid search response from %s: requested From=%d but response reports From=%d", e.Path, e.WantFrom, e.GotFrom)
	}
	return fmt.Sprintf("invalid search response from %s: %s", e.Path, e.Reason)
}

// TooManyResourcesError reports that a search expected to resolve at most one
// resource matched several. The client never guesses between them.
type TooManyResourcesError struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

func (e *TooManyResourcesError) Error() string {
	return fmt.Sprintf("expected at most one %s but found %d", e.Kind, e.Count)
}

// NotFoundError reports that a resource that must exist could not be resolved.
type NotFoundError struct {
	Kind string `json:"kind"`
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Kind) }

// UnmarshalError is a resource object that did not decode into its entity type.
type UnmarshalError struct {
	Kind ResourceKind
	Err  error
}

func (e *UnmarshalError) Error() string {
	return fmt.Sprintf("cannot decode %s resource: %v", e.Kind, e.Err)
}
func (e *UnmarshalError) Unwrap() error { return e.Err }

// WaitFailure says how a status-wait loop ended short of success.
type WaitFailure string

const (
	WaitStatusMissing WaitFailure = "status_missing"
	WaitStatusFailed  WaitFailure = "status_failed"
	WaitStatusUnknown WaitFailure = "status_unknown"
	WaitTimeout       WaitFailure = "timeout"
)

// WaitError is a status-wait loop that terminated without reaching the
// success set.
type WaitError struct {
	Path     string          `json:"path"`
	Reason   WaitFailure     `json:"reason"`
	Status   string          `json:"status,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
}

func (e *WaitError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("waiting on %s: %s (status %q)", e.Path, e.Reason, e.Status)
	}
	return fmt.Sprintf("waiting on %s: %s", e.Path, e.Reason)
}

// FieldMissingError is a request payload missing a required field.
type FieldMissingError struct {
	Field string
}

func (e *FieldMissingError) Error() string { return fmt.Sprintf("required field %q not set", e.Field) }

// Disk edit passwords and password authentication must agree.
var (
	ErrPasswordWithAuthDisabled = errors.New("password given but password auth is disabled")
	ErrPasswordRequired         = errors.New("password auth enabled but no password given")
)
