package memory

import (
	"log/slog"
	"sync"

	application "reviewdesk/contexts/campaign-editorial/submission-review/application"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
)

// Notifier records toasts in order.
type Notifier struct {
	mu     sync.Mutex
	toasts []ports.Toast
}

func (n *Notifier) Notify(level ports.ToastLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, ports.Toast{Level: level, Message: message})
}

func (n *Notifier) Toasts() []ports.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Toast(nil), n.toasts...)
}

// Drain returns the recorded toasts and forgets them.
func (n *Notifier) Drain() []ports.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	toasts := n.toasts
	n.toasts = nil
	return toasts
}

// LogNotifier turns toasts into log lines for headless processes.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(level ports.ToastLevel, message string) {
	logger := application.ResolveLogger(n.Logger)
	attrs := []any{
		"event", "review_toast",
		"module", "campaign-editorial/submission-review",
		"layer", "adapter",
		"level", string(level),
	}
	switch level {
	case ports.ToastError:
		logger.Error(message, attrs...)
	case ports.ToastWarning:
		logger.Warn(message, attrs...)
	default:
		logger.Info(message, attrs...)
	}
}
