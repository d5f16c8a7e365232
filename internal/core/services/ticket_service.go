package services

import (
	"context"
	"fmt"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
)

// TicketService implements the ticket lifecycle: create, read, update,
// assign, delete, and the notification fanout triggered by state changes.
//
// Role gating is applied by the HTTP layer before any call lands here; the
// service treats the actor as already authorized.
type TicketService struct {
	ticketRepo ports.TicketRepository
	userRepo   ports.UserRepository
	notifier   ports.Notifier
}

var _ ports.TicketService = (*TicketService)(nil)

// NewTicketService creates a new ticket service.
func NewTicketService(
	ticketRepo ports.TicketRepository,
	userRepo ports.UserRepository,
	notifier ports.Notifier,
) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// CreateTicket handles the use case for submitting a new ticket. No
// notification fires here: the creator is the only interested party.
func (s *TicketService) CreateTicket(ctx context.Context, params ports.CreateTicketParams) (*domain.Ticket, error) {
	ticket, err := domain.NewTicket(domain.TicketParams{
		Title:       params.Title,
		Description: params.Description,
		CreatedBy:   params.ActorID,
	})
	if err != nil {
		return nil, err
	}

	return s.ticketRepo.Create(ctx, ticket)
}

// GetTicket retrieves a single ticket with creator and assignee resolved.
func (s *TicketService) GetTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	return s.ticketRepo.GetByID(ctx, ticketID)
}

// UpdateStatus changes a ticket's status and notifies the creator and, when
// one exists, the assignee. The notifications are fire-and-forget: a
// delivery failure never fails the status change.
func (s *TicketService) UpdateStatus(ctx context.Context, params ports.UpdateStatusParams) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, params.TicketID)
	if err != nil {
		return nil, err
	}

	if err := ticket.SetStatus(params.Status); err != nil {
		return nil, err
	}

	updated, err := s.ticketRepo.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.notifyStatusChange(updated, statusChangeMessages{
		creator: fmt.Sprintf(
			"Your ticket with id %d status has been updated to %s due to %s assignment",
			updated.ID, updated.Status, assigneeLabel(updated.Assignee),
		),
		assignee: fmt.Sprintf(
			"Ticket with id %d status has been updated to %s",
			updated.ID, updated.Status,
		),
	})

	return updated, nil
}

// AssignTicket assigns a ticket to a user and notifies the new assignee.
// The assignee must exist: a dangling user ID is rejected up front instead
// of surfacing later as an unaddressable notification.
func (s *TicketService) AssignTicket(ctx context.Context, params ports.AssignTicketParams) (*domain.Ticket, error) {
	assignee, err := s.userRepo.GetByID(ctx, params.AssigneeID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.GetByID(ctx, params.TicketID)
	if err != nil {
		return nil, err
	}

	if err := ticket.Assign(assignee.ID); err != nil {
		return nil, err
	}

	updated, err := s.ticketRepo.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(domain.Notification{
		RecipientID:    assignee.ID,
		RecipientEmail: assignee.Email,
		Message:        "You have been assigned to a new ticket",
	})

	return updated, nil
}

// UpdateTicket applies a partial update. If the status was among the
// supplied fields, the same creator/assignee fanout as UpdateStatus fires
// after the new values are persisted.
func (s *TicketService) UpdateTicket(ctx context.Context, params ports.UpdateTicketParams) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, params.TicketID)
	if err != nil {
		return nil, err
	}

	statusChanged, err := ticket.ApplyUpdate(params.Title, params.Description, params.Status)
	if err != nil {
		return nil, err
	}

	updated, err := s.ticketRepo.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	if statusChanged {
		s.notifyStatusChange(updated, statusChangeMessages{
			creator:  fmt.Sprintf("Your ticket status has been updated to %s", updated.Status),
			assignee: fmt.Sprintf("Ticket status has been updated to %s", updated.Status),
		})
	}

	return updated, nil
}

// DeleteTicket hard-deletes a ticket. No notification fires.
func (s *TicketService) DeleteTicket(ctx context.Context, ticketID int64) error {
	return s.ticketRepo.Delete(ctx, ticketID)
}

// ListTickets returns tickets matching the filter with creator and assignee
// resolved for display.
func (s *TicketService) ListTickets(ctx context.Context, filter ports.ListTicketsFilter) ([]*domain.Ticket, error) {
	return s.ticketRepo.List(ctx, filter)
}

type statusChangeMessages struct {
	creator  string
	assignee string
}

// notifyStatusChange emits the creator notice and, when an assignee exists,
// the assignee notice. The two deliveries are independent and unordered.
func (s *TicketService) notifyStatusChange(ticket *domain.Ticket, msgs statusChangeMessages) {
	if ticket.Creator != nil {
		s.notifier.Notify(domain.Notification{
			RecipientID:    ticket.Creator.ID,
			RecipientEmail: ticket.Creator.Email,
			Message:        msgs.creator,
		})
	}

	if ticket.Assignee != nil {
		s.notifier.Notify(domain.Notification{
			RecipientID:    ticket.Assignee.ID,
			RecipientEmail: ticket.Assignee.Email,
			Message:        msgs.assignee,
		})
	}
}

// assigneeLabel renders the assignee reference for the creator notice,
// falling back to "no one" for unassigned tickets.
func assigneeLabel(assignee *domain.UserRef) string {
	if assignee == nil {
		return "no one"
	}
	return assignee.Email
}
