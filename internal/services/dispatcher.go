package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Ananth-NQI/storebot-backend/internal/metrics"
	"github.com/Ananth-NQI/storebot-backend/internal/models"
	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

// Dispatcher routes classified events to the wizard or the ordering
// workflow. It holds no state of its own.
type Dispatcher struct {
	wizard   *AdminWizard
	ordering *OrderingWorkflow
	log      *zap.SugaredLogger
}

func NewDispatcher(wizard *AdminWizard, ordering *OrderingWorkflow, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{wizard: wizard, ordering: ordering, log: log}
}

// Dispatch processes one event to completion
func (d *Dispatcher) Dispatch(ctx context.Context, ev models.Event) error {
	if ev == nil {
		return nil
	}
	metrics.UpdatesTotal.WithLabelValues(string(ev.Kind())).Inc()

	switch ev := ev.(type) {
	case models.CommandEvent:
		switch ev.Name {
		case "start":
			return d.ordering.Welcome(ctx, ev.Sender)
		case "orders":
			return d.ordering.OrderHistory(ctx, ev.Sender)
		}
		return d.wizard.HandleCommand(ctx, ev)

	case models.CallbackEvent:
		return d.wizard.HandleCallback(ctx, ev)

	case models.TextEvent:
		return d.wizard.HandleText(ctx, ev)

	case models.PhotoEvent:
		return d.wizard.HandlePhoto(ctx, ev)

	case models.AppDataEvent:
		payload, err := models.DecodeAppPayload([]byte(ev.Data))
		if errors.Is(err, e.ErrUnknownAction) {
			d.log.Debugf("Ignoring web app payload from %d: %v", ev.UserID, err)
			return nil
		}
		if err != nil {
			return err
		}
		return d.ordering.Handle(ctx, ev.Sender, payload)
	}

	return nil
}
