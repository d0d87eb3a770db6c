package setup

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name            string
		processAlive    bool
		started         bool
		finishedPresent bool
		successPresent  bool
		want            State
	}{
		{
			name: "untouched sentinels before start",
			want: NotStarted,
		},
		{
			name:         "process wins over sentinels",
			processAlive: true,
			started:      true,
			want:         Running,
		},
		{
			name:            "process wins even with stale sentinels",
			processAlive:    true,
			finishedPresent: true,
			successPresent:  true,
			want:            Running,
		},
		{
			name:            "started but finished sentinel untouched",
			started:         true,
			finishedPresent: true,
			successPresent:  true,
			want:            StoppedIllegally,
		},
		{
			name:           "finished but success sentinel untouched",
			started:        true,
			successPresent: true,
			want:           FinishedFailure,
		},
		{
			name:    "all sentinels removed",
			started: true,
			want:    FinishedSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.processAlive, tt.started, tt.finishedPresent, tt.successPresent)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{state: NotStarted, want: "not_started"},
		{state: Running, want: "running"},
		{state: StoppedIllegally, want: "stopped_illegally"},
		{state: FinishedFailure, want: "finished_failure"},
		{state: FinishedSuccess, want: "finished_success"},
		{state: State(99), want: "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d): expected %s, got %s", tt.state, tt.want, got)
		}
	}
}
