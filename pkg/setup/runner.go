package setup

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sacenv/sacenv/pkg/script"
)

// Dialer opens a session to the target host. Called once per phase so the
// wait phase gets a fresh connection after the restart.
type Dialer func(ctx context.Context) (Host, error)

// Runner owns the prepare-then-wait lifecycle for one host.
type Runner struct {
	dial Dialer
	data script.Data

	startTimeout  time.Duration
	finishTimeout time.Duration
	pollInterval  time.Duration
}

// RunnerOption adjusts a Runner at construction time.
type RunnerOption func(*Runner)

// WithTimeouts overrides the phase deadlines and the sentinel poll
// interval.
func WithTimeouts(start, finish, poll time.Duration) RunnerOption {
	return func(r *Runner) {
		r.startTimeout = start
		r.finishTimeout = finish
		r.pollInterval = poll
	}
}

// NewRunner builds a Runner rendering scripts from data and connecting
// through dial.
func NewRunner(dial Dialer, data script.Data, opts ...RunnerOption) *Runner {
	r := &Runner{
		dial:          dial,
		data:          data,
		startTimeout:  2 * time.Minute,
		finishTimeout: 10 * time.Minute,
		pollInterval:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prepare renders and uploads the setup scripts, arms the three sentinels,
// and restarts the host so the boot unit picks the root script up.
func (r *Runner) Prepare(ctx context.Context) error {
	rootScript, err := script.Render(script.RootSetup, r.data)
	if err != nil {
		return err
	}
	userScript, err := script.Render(script.UserSetup, r.data)
	if err != nil {
		return err
	}

	host, err := r.dial(ctx)
	if err != nil {
		return err
	}
	defer host.Close()

	uploads := []struct {
		path    string
		content string
	}{
		{script.RootSetup.FileName(), rootScript},
		{script.UserSetup.FileName(), userScript},
		{sentinelStarted, ""},
		{sentinelFinished, ""},
		{sentinelSuccess, ""},
	}
	for _, u := range uploads {
		if err := host.PutFile(u.path, strings.NewReader(u.content)); err != nil {
			return err
		}
	}
	log.Info().Msg("setup scripts and sentinels uploaded")

	return host.Restart()
}

// WaitForDone reconnects and watches the host until the root script's
// outcome is known. The start phase is bounded separately from the finish
// phase because a script that never starts points at the restart, not at
// the script.
func (r *Runner) WaitForDone(ctx context.Context) error {
	host, err := r.dial(ctx)
	if err != nil {
		return err
	}
	defer host.Close()

	state, err := r.waitLeave(ctx, host, NotStarted, r.startTimeout, ErrStartTimeout)
	if err != nil {
		return err
	}
	log.Info().Stringer("state", state).Msg("setup script started")

	if state == Running {
		state, err = r.waitLeave(ctx, host, Running, r.finishTimeout, ErrFinishTimeout)
		if err != nil {
			return err
		}
		// A script observed running cannot regress to not-started: the
		// process died while the started sentinel was still on disk.
		if state == NotStarted {
			state = StoppedIllegally
		}
	}

	switch state {
	case StoppedIllegally:
		return ErrIllegallyStopped
	case FinishedFailure:
		return ErrFailed
	default:
		log.Info().Msg("setup script finished")
		return nil
	}
}

// waitLeave polls until the observed state moves away from current,
// returning timeoutErr when deadline passes first.
func (r *Runner) waitLeave(ctx context.Context, host Host, current State, deadline time.Duration, timeoutErr error) (State, error) {
	start := time.Now()
	for {
		state, err := r.observe(host)
		if err != nil {
			return state, err
		}
		if state != current {
			return state, nil
		}
		if time.Since(start) > deadline {
			return state, timeoutErr
		}

		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-time.After(r.pollInterval):
		}
	}
}

// observe takes one combined reading of the process table and sentinels.
func (r *Runner) observe(host Host) (State, error) {
	processAlive, err := host.ProcessExists(script.RootSetup.FileName())
	if err != nil {
		return NotStarted, err
	}
	startedPresent, err := host.FileExists(sentinelStarted)
	if err != nil {
		return NotStarted, err
	}
	finishedPresent, err := host.FileExists(sentinelFinished)
	if err != nil {
		return NotStarted, err
	}
	successPresent, err := host.FileExists(sentinelSuccess)
	if err != nil {
		return NotStarted, err
	}

	state := Classify(processAlive, !startedPresent, finishedPresent, successPresent)
	log.Debug().
		Bool("process", processAlive).
		Bool("started", !startedPresent).
		Bool("finished_sentinel", finishedPresent).
		Bool("success_sentinel", successPresent).
		Stringer("state", state).
		Msg("setup script observed")
	return state, nil
}
