// Package notify dispatches desktop notifications through notify-send.
package notify

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/zoomcheck/zoomcheck/internal/platform"
)

// Urgency is the notify-send urgency level.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// Notification is one desktop message.
type Notification struct {
	Urgency Urgency
	Summary string
	// Body is optional; the update notice uses it for the download URL.
	Body string
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifySend delivers notifications with the notify-send command.
type NotifySend struct {
	runner platform.Runner
	logger *log.Logger
}

// NewNotifySend creates a NotifySend. A nil runner uses os/exec.
func NewNotifySend(runner platform.Runner, logger *log.Logger) *NotifySend {
	if runner == nil {
		runner = platform.ExecRunner{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &NotifySend{runner: runner, logger: logger}
}

// Args returns the notify-send argument list for n.
func Args(n Notification) []string {
	urgency := n.Urgency
	if urgency == "" {
		urgency = UrgencyNormal
	}
	args := []string{"-u", string(urgency), n.Summary}
	if n.Body != "" {
		args = append(args, n.Body)
	}
	return args
}

// Notify implements Notifier.
func (s *NotifySend) Notify(ctx context.Context, n Notification) error {
	args := Args(n)
	s.logger.Debug("sending notification", "cmd", platform.CommandLine("notify-send", args...))

	out, err := s.runner.Run(ctx, "notify-send", args...)
	if err != nil {
		return fmt.Errorf("notify-send: %w (output: %q)", err, out)
	}
	return nil
}
