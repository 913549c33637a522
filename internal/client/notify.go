package client

import "log/slog"

// Notifier receives user-facing messages from the store: the toasts a UI
// would render.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to a structured logger. It is the
// default when no Notifier is injected.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slog.Default()
}

func (n LogNotifier) Success(message string) {
	n.logger().Info("notification", "kind", "success", "message", message)
}

func (n LogNotifier) Error(message string) {
	n.logger().Warn("notification", "kind", "error", "message", message)
}
