package lognotify

import (
	"context"

	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/ports/notify"
)

// Notifier solo deja el aviso en el log. Es el default en dev.
type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &Notifier{log: log}
}

func (n *Notifier) Notify(ctx context.Context, msg notify.Message) error {
	n.log.Info("notification", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}

var _ notify.Notifier = (*Notifier)(nil)
