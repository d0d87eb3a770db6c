// Package remote maintains SSH/SFTP sessions against a provisioned host:
// connection with bounded retry, file transfer, process-table probes, and
// TCP port forwarding.
package remote

import "fmt"

// SessionError wraps a failed session operation.
type SessionError struct {
	// Op is the operation that failed (e.g., "connect", "put-file")
	Op string

	// Err is the underlying error
	Err error

	// IsTemporary indicates if the error is temporary and can be retried
	IsTemporary bool
}

func (e *SessionError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

func (e *SessionError) Temporary() bool {
	return e.IsTemporary
}

// NotRegularFileError reports a remote path that exists but is not a file.
type NotRegularFileError struct {
	Path string
}

func (e *NotRegularFileError) Error() string {
	return fmt.Sprintf("remote path exists but is not a regular file: %s", e.Path)
}

// PsOutputError reports process-table output this package cannot parse.
type PsOutputError struct {
	Reason string
	Line   string
}

func (e *PsOutputError) Error() string {
	if e.Line == "" {
		return "unexpected ps output: " + e.Reason
	}
	return fmt.Sprintf("unexpected ps output: %s: %q", e.Reason, e.Line)
}
