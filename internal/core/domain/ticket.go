package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/ahmedX999/customer-support-tickets-api/internal/core/errors"
)

// Field length limits enforced on create/update.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 10000
)

// TicketStatus represents the possible states of a ticket.
type TicketStatus string

const (
	StatusOpen    TicketStatus = "open"
	StatusPending TicketStatus = "pending"
	StatusClosed  TicketStatus = "closed"
)

// ValidStatuses lists every status a ticket may hold.
var ValidStatuses = []TicketStatus{StatusOpen, StatusPending, StatusClosed}

// IsValid reports whether the status is one of the enumerated values.
func (s TicketStatus) IsValid() bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// UserRef is a lightweight projection of a user for display and
// notification addressing.
type UserRef struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Ticket is the core domain entity.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Status      TicketStatus
	CreatedBy   uuid.UUID
	AssignedTo  *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time

	// Creator and Assignee are resolved by the repository on reads.
	// Assignee is nil until the ticket has been assigned.
	Creator  *UserRef
	Assignee *UserRef
}

// TicketParams holds the validated input for creating a ticket.
type TicketParams struct {
	Title       string
	Description string
	CreatedBy   uuid.UUID
}

// NewTicket is a factory function to create a valid new ticket.
func NewTicket(params TicketParams) (*Ticket, error) {
	if params.Title == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if len(params.Title) > MaxTitleLength {
		return nil, apperrors.ErrTitleTooLong
	}
	if params.Description == "" {
		return nil, apperrors.ErrDescriptionRequired
	}
	if len(params.Description) > MaxDescriptionLength {
		return nil, apperrors.ErrDescriptionTooLong
	}
	if params.CreatedBy == uuid.Nil {
		return nil, apperrors.ErrCreatorRequired
	}

	return &Ticket{
		Title:       params.Title,
		Description: params.Description,
		Status:      StatusOpen,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// SetStatus changes the ticket's status after validating the new value.
func (t *Ticket) SetStatus(newStatus TicketStatus) error {
	if !newStatus.IsValid() {
		return apperrors.ErrInvalidStatus
	}
	t.Status = newStatus
	t.touch()
	return nil
}

// Assign sets or changes the assignee of the ticket.
func (t *Ticket) Assign(assigneeID uuid.UUID) error {
	if assigneeID == uuid.Nil {
		return apperrors.ErrAssigneeRequired
	}
	t.AssignedTo = &assigneeID
	t.touch()
	return nil
}

// ApplyUpdate applies a partial update. Only non-nil fields are changed.
// It reports whether the status was among the applied fields.
func (t *Ticket) ApplyUpdate(title, description *string, status *TicketStatus) (bool, error) {
	if title != nil {
		if *title == "" {
			return false, apperrors.ErrTitleRequired
		}
		if len(*title) > MaxTitleLength {
			return false, apperrors.ErrTitleTooLong
		}
	}
	if description != nil {
		if *description == "" {
			return false, apperrors.ErrDescriptionRequired
		}
		if len(*description) > MaxDescriptionLength {
			return false, apperrors.ErrDescriptionTooLong
		}
	}
	if status != nil && !status.IsValid() {
		return false, apperrors.ErrInvalidStatus
	}

	if title != nil {
		t.Title = *title
	}
	if description != nil {
		t.Description = *description
	}
	statusChanged := false
	if status != nil {
		t.Status = *status
		statusChanged = true
	}

	if title != nil || description != nil || status != nil {
		t.touch()
	}
	return statusChanged, nil
}

// IsCreatedBy reports whether the given user created the ticket.
func (t *Ticket) IsCreatedBy(userID uuid.UUID) bool {
	return t.CreatedBy == userID
}

// IsAssignedTo reports whether the ticket is assigned to the given user.
func (t *Ticket) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}

func (t *Ticket) touch() {
	now := time.Now().UTC()
	t.UpdatedAt = &now
}
