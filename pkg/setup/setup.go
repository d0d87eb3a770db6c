// Package setup drives the remote completion protocol: push the setup
// scripts and three sentinel files to a host, restart it, and watch the
// process table and sentinels until the root script's outcome is known.
//
// The sentinels encode progress negatively. The script removes the
// "started" file when it begins, the "finished" file when it exits through
// a regular path, and the "success" file only when it succeeds. File
// presence is the only synchronization primitive between the two sides;
// the script never re-creates a sentinel it has removed.
package setup

import (
	"errors"
	"io"
)

const (
	sentinelStarted  = "root_setup_not_yet_started_once"
	sentinelFinished = "root_setup_not_yet_finished_once"
	sentinelSuccess  = "root_setup_not_yet_success_once"
)

var (
	// ErrStartTimeout reports that the script never started; distinct
	// from ErrFinishTimeout because it points at the restart, not the
	// script itself.
	ErrStartTimeout = errors.New("setup script did not start before the start deadline")

	// ErrFinishTimeout reports a script that started but outlived the
	// finish deadline.
	ErrFinishTimeout = errors.New("setup script did not finish before the finish deadline")

	// ErrIllegallyStopped reports a script that died without signaling
	// completion (crash, kill, power loss).
	ErrIllegallyStopped = errors.New("setup script stopped without signaling completion")

	// ErrFailed reports a script that ran to completion and signaled
	// failure.
	ErrFailed = errors.New("setup script finished and signaled failure")
)

// Host is the slice of a remote session the protocol needs.
type Host interface {
	PutFile(remotePath string, data io.Reader) error
	FileExists(remotePath string) (bool, error)
	ProcessExists(name string) (bool, error)
	Restart() error
	Close() error
}

// State classifies one observation of the remote script.
type State int

const (
	// NotStarted: no process and the started sentinel is still present.
	NotStarted State = iota
	// Running: the script is in the process table.
	Running
	// StoppedIllegally: the script is gone but never signaled a regular
	// exit.
	StoppedIllegally
	// FinishedFailure: the script exited regularly and signaled failure.
	FinishedFailure
	// FinishedSuccess: the script exited regularly and signaled success.
	FinishedSuccess
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case StoppedIllegally:
		return "stopped_illegally"
	case FinishedFailure:
		return "finished_failure"
	case FinishedSuccess:
		return "finished_success"
	}
	return "unknown"
}

// Classify derives the script state from one atomic-ish set of raw
// observations: process-table presence and the three sentinel files.
func Classify(processAlive, started, finishedPresent, successPresent bool) State {
	if processAlive {
		return Running
	}
	if !started {
		return NotStarted
	}
	if finishedPresent {
		return StoppedIllegally
	}
	if successPresent {
		return FinishedFailure
	}
	return FinishedSuccess
}
