package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"filasling/internal/events"
	"filasling/pkg/eventbus"
)

// Broadcaster - рассылка сообщений подключённым клиентам (websocket.Hub).
type Broadcaster interface {
	Broadcast(messageType string, payload interface{}) error
}

type ticketDeletedPayload struct {
	ID string `json:"id"`
}

// TicketListener пересылает изменения очереди в realtime-канал.
type TicketListener struct {
	hub    Broadcaster
	logger *zap.Logger
}

func NewTicketListener(hub Broadcaster, logger *zap.Logger) *TicketListener {
	return &TicketListener{hub: hub, logger: logger}
}

func (l *TicketListener) Register(bus *eventbus.Bus) {
	for _, name := range []string{events.TicketCreated, events.TicketUpdated, events.TicketDeleted} {
		bus.Subscribe(name, l.handle)
	}
	l.logger.Info("TicketListener inscrito nos eventos de tickets")
}

func (l *TicketListener) handle(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.TicketChangedEvent)
	if !ok {
		return fmt.Errorf("evento inesperado: %T", event)
	}

	var payload interface{} = e.Ticket
	if e.Kind == events.TicketDeleted || e.Ticket == nil {
		payload = ticketDeletedPayload{ID: e.TicketID}
	}

	if err := l.hub.Broadcast(e.Kind, payload); err != nil {
		return fmt.Errorf("falha ao enviar evento %s: %w", e.Kind, err)
	}
	l.logger.Debug("Evento de ticket enviado", zap.String("event", e.Kind), zap.String("ticketID", e.TicketID))
	return nil
}
