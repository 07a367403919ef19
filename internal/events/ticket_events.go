package events

import "filasling/internal/dto"

const (
	TicketCreated = "ticket.created"
	TicketUpdated = "ticket.updated"
	TicketDeleted = "ticket.deleted"
)

// TicketChangedEvent публикуется после успешного коммита изменения тикета.
type TicketChangedEvent struct {
	Kind     string
	TicketID string
	Ticket   *dto.TicketDTO
}

func (e TicketChangedEvent) Name() string {
	return e.Kind
}
