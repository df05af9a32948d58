package notify

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"testing"
)

type recordingRunner struct {
	name string
	args []string
	err  error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.name = name
	r.args = args
	return nil, r.err
}

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		n    Notification
		want []string
	}{
		{
			"up to date",
			Notification{Urgency: UrgencyLow, Summary: "Zoom is up-to-date (5.16.10)"},
			[]string{"-u", "low", "Zoom is up-to-date (5.16.10)"},
		},
		{
			"update with url",
			Notification{Urgency: UrgencyCritical, Summary: "Zoom update available (5.16.10 -> 5.17.0)", Body: "https://zoom.us/download"},
			[]string{"-u", "critical", "Zoom update available (5.16.10 -> 5.17.0)", "https://zoom.us/download"},
		},
		{
			"default urgency",
			Notification{Summary: "hello"},
			[]string{"-u", "normal", "hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Args(tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotifySend_RunsCommand(t *testing.T) {
	r := &recordingRunner{}
	s := NewNotifySend(r, nil)

	err := s.Notify(context.Background(), Notification{Urgency: UrgencyLow, Summary: "Zoom is up-to-date (5.16.10)"})
	if err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if r.name != "notify-send" {
		t.Errorf("ran %q, want notify-send", r.name)
	}
	want := []string{"-u", "low", "Zoom is up-to-date (5.16.10)"}
	if !reflect.DeepEqual(r.args, want) {
		t.Errorf("args = %q, want %q", r.args, want)
	}
}

func TestNotifySend_MissingBinary(t *testing.T) {
	s := NewNotifySend(&recordingRunner{err: exec.ErrNotFound}, nil)

	err := s.Notify(context.Background(), Notification{Summary: "x"})
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected wrapped exec.ErrNotFound, got %v", err)
	}
}
