package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
)

// AuthService defines the port for authentication business logic.
type AuthService interface {
	Register(ctx context.Context, params domain.UserRegistrationParams) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// CreateTicketParams defines the required input for creating a new ticket.
type CreateTicketParams struct {
	Title       string
	Description string
	ActorID     uuid.UUID
}

// UpdateStatusParams defines the input for changing a ticket's status.
type UpdateStatusParams struct {
	TicketID int64
	Status   domain.TicketStatus
	ActorID  uuid.UUID
}

// AssignTicketParams defines the input for assigning a ticket.
type AssignTicketParams struct {
	TicketID   int64
	AssigneeID uuid.UUID
	ActorID    uuid.UUID
}

// UpdateTicketParams defines the input for a partial ticket update. Nil
// fields are left unchanged.
type UpdateTicketParams struct {
	TicketID    int64
	Title       *string
	Description *string
	Status      *domain.TicketStatus
	ActorID     uuid.UUID
}

// TicketService defines the core business operations for managing tickets.
// Role gating is a precondition enforced by the transport layer: the service
// trusts that the actor was authorized for the operation before the call.
type TicketService interface {
	CreateTicket(ctx context.Context, params CreateTicketParams) (*domain.Ticket, error)
	GetTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (*domain.Ticket, error)
	AssignTicket(ctx context.Context, params AssignTicketParams) (*domain.Ticket, error)
	UpdateTicket(ctx context.Context, params UpdateTicketParams) (*domain.Ticket, error)
	DeleteTicket(ctx context.Context, ticketID int64) error
	ListTickets(ctx context.Context, filter ListTicketsFilter) ([]*domain.Ticket, error)
}

// Notifier defines the port for dispatching notifications. Notify returns
// immediately; delivery is best-effort and failures never surface to the
// caller.
type Notifier interface {
	Notify(notification domain.Notification)
}

// Pusher defines the port for delivering a message to every live connection
// registered for a user. Delivery to users without connections is a no-op.
type Pusher interface {
	SendToUser(userID uuid.UUID, message string)
}

// EmailSender defines the port for the outbound async message channel.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
