package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
	apperrors "github.com/ahmedX999/customer-support-tickets-api/internal/core/errors"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
)

func seedUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	user, err := NewUserRepository(testPool).Create(context.Background(), newTestUser(t, email, role))
	require.NoError(t, err)
	return user
}

func seedTicket(t *testing.T, creator *domain.User) *domain.Ticket {
	t.Helper()
	ticket, err := domain.NewTicket(domain.TicketParams{
		Title:       "Monitor flickers",
		Description: "Happens whenever the AC turns on.",
		CreatedBy:   creator.ID,
	})
	require.NoError(t, err)

	created, err := NewTicketRepository(testPool).Create(context.Background(), ticket)
	require.NoError(t, err)
	return created
}

func TestTicketRepository_CreateResolvesCreator(t *testing.T) {
	truncateTables(t)
	creator := seedUser(t, "creator@example.com", domain.RoleCustomer)

	created := seedTicket(t, creator)

	assert.Greater(t, created.ID, int64(0))
	assert.Equal(t, domain.StatusOpen, created.Status)
	require.NotNil(t, created.Creator)
	assert.Equal(t, creator.ID, created.Creator.ID)
	assert.Equal(t, "creator@example.com", created.Creator.Email)
	assert.Nil(t, created.Assignee)
	assert.Nil(t, created.AssignedTo)
}

func TestTicketRepository_GetByID(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)
	creator := seedUser(t, "creator@example.com", domain.RoleCustomer)
	created := seedTicket(t, creator)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.Title, found.Title)

	_, err = repo.GetByID(ctx, created.ID+1000)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}

func TestTicketRepository_UpdateStatusAndAssignee(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)
	creator := seedUser(t, "creator@example.com", domain.RoleCustomer)
	agent := seedUser(t, "agent@example.com", domain.RoleAgent)
	created := seedTicket(t, creator)

	require.NoError(t, created.SetStatus(domain.StatusPending))
	require.NoError(t, created.Assign(agent.ID))

	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, updated.Status)
	require.NotNil(t, updated.Assignee)
	assert.Equal(t, agent.ID, updated.Assignee.ID)
	assert.Equal(t, "agent@example.com", updated.Assignee.Email)
	require.NotNil(t, updated.UpdatedAt)
}

func TestTicketRepository_UpdateMissingTicket(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)
	creator := seedUser(t, "creator@example.com", domain.RoleCustomer)

	ghost := &domain.Ticket{
		ID:          999999,
		Title:       "Ghost",
		Description: "Never persisted",
		Status:      domain.StatusOpen,
		CreatedBy:   creator.ID,
	}

	_, err := repo.Update(ctx, ghost)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}

func TestTicketRepository_DeleteThenList(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)
	creator := seedUser(t, "creator@example.com", domain.RoleCustomer)

	first := seedTicket(t, creator)
	second := seedTicket(t, creator)

	require.NoError(t, repo.Delete(ctx, first.ID))

	// Deleting again reports not found.
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), apperrors.ErrTicketNotFound)

	tickets, err := repo.List(ctx, ports.ListTicketsFilter{Scope: ports.ScopeAll})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, second.ID, tickets[0].ID)
}

func TestTicketRepository_ListScopes(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)

	creator := seedUser(t, "creator@example.com", domain.RoleCustomer)
	other := seedUser(t, "other@example.com", domain.RoleCustomer)
	agent := seedUser(t, "agent@example.com", domain.RoleAgent)

	mine := seedTicket(t, creator)
	theirs := seedTicket(t, other)

	require.NoError(t, theirs.Assign(agent.ID))
	_, err := repo.Update(ctx, theirs)
	require.NoError(t, err)

	all, err := repo.List(ctx, ports.ListTicketsFilter{Scope: ports.ScopeAll})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	createdByMe, err := repo.List(ctx, ports.ListTicketsFilter{
		Scope:  ports.ScopeCreated,
		UserID: creator.ID,
	})
	require.NoError(t, err)
	require.Len(t, createdByMe, 1)
	assert.Equal(t, mine.ID, createdByMe[0].ID)

	assignedToAgent, err := repo.List(ctx, ports.ListTicketsFilter{
		Scope:  ports.ScopeAssigned,
		UserID: agent.ID,
	})
	require.NoError(t, err)
	require.Len(t, assignedToAgent, 1)
	assert.Equal(t, theirs.ID, assignedToAgent[0].ID)

	assignedToNobody, err := repo.List(ctx, ports.ListTicketsFilter{
		Scope:  ports.ScopeAssigned,
		UserID: creator.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, assignedToNobody)
}
