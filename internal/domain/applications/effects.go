package applications

import (
	"context"
	"fmt"
	"strings"

	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/platform/metrics"
	"animal-shelter/internal/ports/notify"
)

// Effects corre después del commit: métricas, aviso al solicitante e
// invalidación de cache. Nada de esto puede deshacer la transacción.
type Effects struct {
	reval    *animals.Revalidator
	notifier notify.Notifier
	log      logger.Logger
}

func NewEffects(reval *animals.Revalidator, notifier notify.Notifier, log logger.Logger) *Effects {
	if log == nil {
		log = logger.NewNop()
	}
	return &Effects{reval: reval, notifier: notifier, log: log}
}

func (e *Effects) Committed(ctx context.Context, changes []Change, animalIDs ...string) {
	if e == nil {
		return
	}
	for _, c := range changes {
		metrics.ApplicationStatusTransitions.WithLabelValues(string(c.From), string(c.To)).Inc()
		e.log.Info("application status changed", map[string]any{
			"application_id": c.Application.ID,
			"animal_id":      c.Application.AnimalID,
			"from":           c.From,
			"to":             c.To,
		})
		e.notify(ctx, c)
	}
	e.reval.Animals(ctx, animalIDs...)
}

func (e *Effects) notify(ctx context.Context, c Change) {
	to := strings.TrimSpace(c.Application.Profile.Email)
	if e.notifier == nil || to == "" {
		return
	}

	body := fmt.Sprintf("Hi %s,\n\nThe status of your adoption application is now %s.",
		c.Application.Profile.FullName, c.To)
	if c.Reason != "" {
		body += "\n\nReason: " + c.Reason
	}

	err := e.notifier.Notify(ctx, notify.Message{
		To:      to,
		Subject: "Your adoption application was updated",
		Body:    body,
	})
	if err != nil {
		e.log.Warn("applicant notification failed", map[string]any{
			"application_id": c.Application.ID,
			"error":          err,
		})
	}
}
