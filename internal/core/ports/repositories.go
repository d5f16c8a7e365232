package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
)

// UserRepository defines the port for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// TicketListScope selects which tickets a listing returns.
type TicketListScope string

const (
	// ScopeAll returns every ticket.
	ScopeAll TicketListScope = "all"
	// ScopeCreated returns tickets created by the given user.
	ScopeCreated TicketListScope = "created"
	// ScopeAssigned returns tickets assigned to the given user.
	ScopeAssigned TicketListScope = "assigned"
)

// ListTicketsFilter scopes a ticket listing to a user when the scope
// requires one.
type ListTicketsFilter struct {
	Scope  TicketListScope
	UserID uuid.UUID
}

// TicketRepository defines the port for ticket persistence. GetByID and the
// listing methods resolve Creator and Assignee references.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListTicketsFilter) ([]*domain.Ticket, error)
}
