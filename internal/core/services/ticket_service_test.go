package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
	apperrors "github.com/ahmedX999/customer-support-tickets-api/internal/core/errors"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/mocks"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
)

type ticketServiceFixture struct {
	ticketRepo *mocks.MockTicketRepository
	userRepo   *mocks.MockUserRepository
	notifier   *mocks.MockNotifier
	service    *TicketService
}

func newTicketServiceFixture() *ticketServiceFixture {
	ticketRepo := mocks.NewMockTicketRepository()
	userRepo := mocks.NewMockUserRepository()
	notifier := mocks.NewMockNotifier()

	return &ticketServiceFixture{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		service:    NewTicketService(ticketRepo, userRepo, notifier),
	}
}

// sentNotifications extracts the notifications recorded by the mock notifier.
func (f *ticketServiceFixture) sentNotifications() []domain.Notification {
	var sent []domain.Notification
	for _, call := range f.notifier.Calls {
		if call.Method == "Notify" {
			sent = append(sent, call.Arguments.Get(0).(domain.Notification))
		}
	}
	return sent
}

func storedTicket(id int64, status domain.TicketStatus, creator *domain.UserRef, assignee *domain.UserRef) *domain.Ticket {
	ticket := &domain.Ticket{
		ID:          id,
		Title:       "Laptop will not boot",
		Description: "Black screen after the last update.",
		Status:      status,
		CreatedBy:   creator.ID,
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
		Creator:     creator,
		Assignee:    assignee,
	}
	if assignee != nil {
		id := assignee.ID
		ticket.AssignedTo = &id
	}
	return ticket
}

func userRef(name, email string) *domain.UserRef {
	return &domain.UserRef{ID: uuid.New(), Name: name, Email: email}
}

func TestTicketService_CreateTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a valid ticket without notifying anyone", func(t *testing.T) {
		f := newTicketServiceFixture()
		actorID := uuid.New()

		f.ticketRepo.On("Create", ctx, mock.AnythingOfType("*domain.Ticket")).
			Return(&domain.Ticket{ID: 1, Status: domain.StatusOpen}, nil)

		ticket, err := f.service.CreateTicket(ctx, ports.CreateTicketParams{
			Title:       "Laptop will not boot",
			Description: "Black screen after the last update.",
			ActorID:     actorID,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), ticket.ID)
		f.ticketRepo.AssertExpectations(t)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything)
	})

	t.Run("rejects empty title and persists nothing", func(t *testing.T) {
		f := newTicketServiceFixture()

		_, err := f.service.CreateTicket(ctx, ports.CreateTicketParams{
			Title:       "",
			Description: "desc",
			ActorID:     uuid.New(),
		})

		assert.ErrorIs(t, err, apperrors.ErrTitleRequired)
		f.ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything)
	})

	t.Run("rejects empty description and persists nothing", func(t *testing.T) {
		f := newTicketServiceFixture()

		_, err := f.service.CreateTicket(ctx, ports.CreateTicketParams{
			Title:       "title",
			Description: "",
			ActorID:     uuid.New(),
		})

		assert.ErrorIs(t, err, apperrors.ErrDescriptionRequired)
		f.ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTicketService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies creator and assignee on a status change", func(t *testing.T) {
		f := newTicketServiceFixture()
		creator := userRef("Jamie", "jamie@example.com")
		assignee := userRef("Alex", "alex@example.com")

		current := storedTicket(42, domain.StatusPending, creator, assignee)
		updated := storedTicket(42, domain.StatusClosed, creator, assignee)

		f.ticketRepo.On("GetByID", ctx, int64(42)).Return(current, nil)
		f.ticketRepo.On("Update", ctx, mock.AnythingOfType("*domain.Ticket")).Return(updated, nil)
		f.notifier.On("Notify", mock.AnythingOfType("domain.Notification")).Return()

		_, err := f.service.UpdateStatus(ctx, ports.UpdateStatusParams{
			TicketID: 42,
			Status:   domain.StatusClosed,
			ActorID:  uuid.New(),
		})
		require.NoError(t, err)

		sent := f.sentNotifications()
		require.Len(t, sent, 2)

		assert.Equal(t, creator.ID, sent[0].RecipientID)
		assert.Equal(t, creator.Email, sent[0].RecipientEmail)
		assert.Equal(t,
			"Your ticket with id 42 status has been updated to closed due to alex@example.com assignment",
			sent[0].Message,
		)

		assert.Equal(t, assignee.ID, sent[1].RecipientID)
		assert.Equal(t, "Ticket with id 42 status has been updated to closed", sent[1].Message)
	})

	t.Run("notifies only the creator when unassigned", func(t *testing.T) {
		f := newTicketServiceFixture()
		creator := userRef("Jamie", "jamie@example.com")

		current := storedTicket(7, domain.StatusOpen, creator, nil)
		updated := storedTicket(7, domain.StatusPending, creator, nil)

		f.ticketRepo.On("GetByID", ctx, int64(7)).Return(current, nil)
		f.ticketRepo.On("Update", ctx, mock.AnythingOfType("*domain.Ticket")).Return(updated, nil)
		f.notifier.On("Notify", mock.AnythingOfType("domain.Notification")).Return()

		_, err := f.service.UpdateStatus(ctx, ports.UpdateStatusParams{
			TicketID: 7,
			Status:   domain.StatusPending,
			ActorID:  uuid.New(),
		})
		require.NoError(t, err)

		sent := f.sentNotifications()
		require.Len(t, sent, 1)
		assert.Equal(t,
			"Your ticket with id 7 status has been updated to pending due to no one assignment",
			sent[0].Message,
		)
	})

	t.Run("unknown ticket emits nothing", func(t *testing.T) {
		f := newTicketServiceFixture()

		f.ticketRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrTicketNotFound)

		_, err := f.service.UpdateStatus(ctx, ports.UpdateStatusParams{
			TicketID: 99,
			Status:   domain.StatusClosed,
			ActorID:  uuid.New(),
		})

		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
		f.ticketRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything)
	})

	t.Run("invalid status is rejected before persistence", func(t *testing.T) {
		f := newTicketServiceFixture()
		creator := userRef("Jamie", "jamie@example.com")

		f.ticketRepo.On("GetByID", ctx, int64(1)).
			Return(storedTicket(1, domain.StatusOpen, creator, nil), nil)

		_, err := f.service.UpdateStatus(ctx, ports.UpdateStatusParams{
			TicketID: 1,
			Status:   domain.TicketStatus("archived"),
			ActorID:  uuid.New(),
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
		f.ticketRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything)
	})
}

func TestTicketService_AssignTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns and notifies exactly the new assignee", func(t *testing.T) {
		f := newTicketServiceFixture()
		creator := userRef("Jamie", "jamie@example.com")
		assignee := &domain.User{
			ID:    uuid.New(),
			Name:  "Alex",
			Email: "alex@example.com",
			Role:  domain.RoleAgent,
		}

		current := storedTicket(5, domain.StatusOpen, creator, nil)
		updated := storedTicket(5, domain.StatusOpen, creator, assignee.Ref())

		f.userRepo.On("GetByID", ctx, assignee.ID).Return(assignee, nil)
		f.ticketRepo.On("GetByID", ctx, int64(5)).Return(current, nil)
		f.ticketRepo.On("Update", ctx, mock.AnythingOfType("*domain.Ticket")).Return(updated, nil)
		f.notifier.On("Notify", mock.AnythingOfType("domain.Notification")).Return()

		result, err := f.service.AssignTicket(ctx, ports.AssignTicketParams{
			TicketID:   5,
			AssigneeID: assignee.ID,
			ActorID:    uuid.New(),
		})
		require.NoError(t, err)
		require.NotNil(t, result.Assignee)

		sent := f.sentNotifications()
		require.Len(t, sent, 1)
		assert.Equal(t, assignee.ID, sent[0].RecipientID)
		assert.Equal(t, "alex@example.com", sent[0].RecipientEmail)
		assert.Equal(t, "You have been assigned to a new ticket", sent[0].Message)
	})

	t.Run("rejects a dangling assignee before touching the ticket", func(t *testing.T) {
		f := newTicketServiceFixture()
		ghostID := uuid.New()

		f.userRepo.On("GetByID", ctx, ghostID).Return(nil, apperrors.ErrUserNotFound)

		_, err := f.service.AssignTicket(ctx, ports.AssignTicketParams{
			TicketID:   5,
			AssigneeID: ghostID,
			ActorID:    uuid.New(),
		})

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		f.ticketRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		f.ticketRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything)
	})
}

func TestTicketService_UpdateTicket(t *testing.T) {
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }
	statusPtr := func(s domain.TicketStatus) *domain.TicketStatus { return &s }

	t.Run("field-only update emits no notifications", func(t *testing.T) {
		f := newTicketServiceFixture()
		creator := userRef("Jamie", "jamie@example.com")

		current := storedTicket(3, domain.StatusOpen, creator, nil)
		updated := storedTicket(3, domain.StatusOpen, creator, nil)
		updated.Title = "Clearer title"

		f.ticketRepo.On("GetByID", ctx, int64(3)).Return(current, nil)
		f.ticketRepo.On("Update", ctx, mock.AnythingOfType("*domain.Ticket")).Return(updated, nil)

		result, err := f.service.UpdateTicket(ctx, ports.UpdateTicketParams{
			TicketID: 3,
			Title:    strPtr("Clearer title"),
			ActorID:  uuid.New(),
		})
		require.NoError(t, err)
		assert.Equal(t, "Clearer title", result.Title)

		f.notifier.AssertNotCalled(t, "Notify", mock.Anything)
	})

	t.Run("status change triggers the short-form fanout", func(t *testing.T) {
		f := newTicketServiceFixture()
		creator := userRef("Jamie", "jamie@example.com")
		assignee := userRef("Alex", "alex@example.com")

		current := storedTicket(3, domain.StatusOpen, creator, assignee)
		updated := storedTicket(3, domain.StatusClosed, creator, assignee)

		f.ticketRepo.On("GetByID", ctx, int64(3)).Return(current, nil)
		f.ticketRepo.On("Update", ctx, mock.AnythingOfType("*domain.Ticket")).Return(updated, nil)
		f.notifier.On("Notify", mock.AnythingOfType("domain.Notification")).Return()

		_, err := f.service.UpdateTicket(ctx, ports.UpdateTicketParams{
			TicketID: 3,
			Status:   statusPtr(domain.StatusClosed),
			ActorID:  uuid.New(),
		})
		require.NoError(t, err)

		sent := f.sentNotifications()
		require.Len(t, sent, 2)
		assert.Equal(t, "Your ticket status has been updated to closed", sent[0].Message)
		assert.Equal(t, "Ticket status has been updated to closed", sent[1].Message)
	})

	t.Run("invalid partial update persists nothing", func(t *testing.T) {
		f := newTicketServiceFixture()
		creator := userRef("Jamie", "jamie@example.com")

		f.ticketRepo.On("GetByID", ctx, int64(3)).
			Return(storedTicket(3, domain.StatusOpen, creator, nil), nil)

		_, err := f.service.UpdateTicket(ctx, ports.UpdateTicketParams{
			TicketID: 3,
			Title:    strPtr(""),
			ActorID:  uuid.New(),
		})

		assert.ErrorIs(t, err, apperrors.ErrTitleRequired)
		f.ticketRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything)
	})
}

func TestTicketService_DeleteTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to the repository", func(t *testing.T) {
		f := newTicketServiceFixture()
		f.ticketRepo.On("Delete", ctx, int64(8)).Return(nil)

		require.NoError(t, f.service.DeleteTicket(ctx, 8))
		f.ticketRepo.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		f := newTicketServiceFixture()
		f.ticketRepo.On("Delete", ctx, int64(8)).Return(apperrors.ErrTicketNotFound)

		assert.ErrorIs(t, f.service.DeleteTicket(ctx, 8), apperrors.ErrTicketNotFound)
	})
}

func TestTicketService_ListTickets(t *testing.T) {
	ctx := context.Background()
	f := newTicketServiceFixture()
	creator := userRef("Jamie", "jamie@example.com")

	expected := []*domain.Ticket{
		storedTicket(2, domain.StatusOpen, creator, nil),
		storedTicket(1, domain.StatusClosed, creator, nil),
	}

	filter := ports.ListTicketsFilter{Scope: ports.ScopeCreated, UserID: creator.ID}
	f.ticketRepo.On("List", ctx, filter).Return(expected, nil)

	tickets, err := f.service.ListTickets(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, expected, tickets)
}

func TestTicketService_NotificationsAreFireAndForget(t *testing.T) {
	// The Notifier port has no error return, so no implementation can fail a
	// mutation. The status change must succeed regardless of what delivery
	// later does with the notifications.
	ctx := context.Background()
	f := newTicketServiceFixture()
	creator := userRef("Jamie", "jamie@example.com")

	current := storedTicket(11, domain.StatusOpen, creator, nil)
	updated := storedTicket(11, domain.StatusClosed, creator, nil)

	f.ticketRepo.On("GetByID", ctx, int64(11)).Return(current, nil)
	f.ticketRepo.On("Update", ctx, mock.AnythingOfType("*domain.Ticket")).Return(updated, nil)
	f.notifier.On("Notify", mock.AnythingOfType("domain.Notification")).Return()

	result, err := f.service.UpdateStatus(ctx, ports.UpdateStatusParams{
		TicketID: 11,
		Status:   domain.StatusClosed,
		ActorID:  uuid.New(),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, result.Status)
	assert.Equal(t, int64(11), result.ID)
}
