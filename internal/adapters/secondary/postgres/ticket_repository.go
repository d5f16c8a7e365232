package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
	apperrors "github.com/ahmedX999/customer-support-tickets-api/internal/core/errors"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/utils"
)

// TicketRepository is the secondary adapter for ticket persistence.
type TicketRepository struct {
	pool *pgxpool.Pool
}

// Ensure TicketRepository implements the ports.TicketRepository interface.
var _ ports.TicketRepository = (*TicketRepository)(nil)

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

// ticketColumns selects the ticket row joined with the creator and, when
// present, the assignee so reads come back with both references resolved.
const ticketColumns = `
	t.id, t.title, t.description, t.status, t.created_by, t.assigned_to,
	t.created_at, t.updated_at,
	c.name, c.email,
	a.id, a.name, a.email
`

const ticketJoins = `
	FROM tickets t
	JOIN users c ON c.id = t.created_by
	LEFT JOIN users a ON a.id = t.assigned_to
`

// scanTicket maps one joined row to the domain model.
func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket        domain.Ticket
		assignedTo    pgtype.UUID
		updatedAt     pgtype.Timestamptz
		creatorName   string
		creatorEmail  string
		assigneeID    pgtype.UUID
		assigneeName  pgtype.Text
		assigneeEmail pgtype.Text
	)

	err := row.Scan(
		&ticket.ID, &ticket.Title, &ticket.Description, &ticket.Status,
		&ticket.CreatedBy, &assignedTo,
		&ticket.CreatedAt, &updatedAt,
		&creatorName, &creatorEmail,
		&assigneeID, &assigneeName, &assigneeEmail,
	)
	if err != nil {
		return nil, err
	}

	ticket.AssignedTo = utils.FromNullUUID(assignedTo)
	ticket.UpdatedAt = utils.FromNullTime(updatedAt)

	ticket.Creator = &domain.UserRef{
		ID:    ticket.CreatedBy,
		Name:  creatorName,
		Email: creatorEmail,
	}

	if assigneeID.Valid {
		ticket.Assignee = &domain.UserRef{
			ID:    uuid.UUID(assigneeID.Bytes),
			Name:  utils.FromString(assigneeName),
			Email: utils.FromString(assigneeEmail),
		}
	}

	return &ticket, nil
}

// Create persists a new ticket entity and returns it with the creator
// resolved.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tickets (title, description, status, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		ticket.Title, ticket.Description, string(ticket.Status), ticket.CreatedBy,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a single ticket by its ID with creator and assignee
// resolved.
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+ticketColumns+ticketJoins+` WHERE t.id = $1`, id)

	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// Update persists changes to an existing ticket entity.
func (r *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	assignedTo := utils.ToNullUUID(ticket.AssignedTo)

	updatedAt := utils.ToNullTime(ticket.UpdatedAt)
	if !updatedAt.Valid {
		updatedAt = pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE tickets
		SET title = $2, description = $3, status = $4, assigned_to = $5, updated_at = $6
		WHERE id = $1`,
		ticket.ID, ticket.Title, ticket.Description, string(ticket.Status),
		assignedTo, updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrTicketNotFound
	}

	return r.GetByID(ctx, ticket.ID)
}

// Delete hard-deletes a ticket.
func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}
	return nil
}

// List retrieves tickets matching the filter, newest first, with creator
// and assignee resolved.
func (r *TicketRepository) List(ctx context.Context, filter ports.ListTicketsFilter) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ticketJoins
	args := []any{}

	switch filter.Scope {
	case ports.ScopeCreated:
		query += ` WHERE t.created_by = $1`
		args = append(args, filter.UserID)
	case ports.ScopeAssigned:
		query += ` WHERE t.assigned_to = $1`
		args = append(args, filter.UserID)
	}

	query += ` ORDER BY t.created_at DESC, t.id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}
