package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mw "github.com/ahmedX999/customer-support-tickets-api/internal/adapters/primary/http/middleware"
	"github.com/ahmedX999/customer-support-tickets-api/internal/adapters/primary/validation"
	"github.com/ahmedX999/customer-support-tickets-api/internal/auth"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
)

// TicketHandler handles HTTP requests for tickets
type TicketHandler struct {
	ticketService ports.TicketService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(
	ticketService ports.TicketService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "ticket"),
	}
}

// RegisterRoutes sets up the routing for all ticket endpoints. Role gates
// mirror the API contract: creation and "my tickets" listings are open to
// any authenticated user, status/field updates to agents and admins,
// assignment, deletion and the full listing to admins only.
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreateTicket)
	r.With(mw.RequireRole(domain.RoleAdmin)).Get("/", h.HandleListTickets)
	r.Get("/me", h.HandleListMyTickets)
	r.Get("/me/assigned", h.HandleListMyAssignedTickets)

	// Routes for a specific ticket
	r.Route("/{ticketID}", func(r chi.Router) {
		r.Get("/", h.HandleGetTicket)
		r.With(mw.RequireRole(domain.RoleAgent, domain.RoleAdmin)).Patch("/", h.HandleUpdateTicket)
		r.With(mw.RequireRole(domain.RoleAgent, domain.RoleAdmin)).Patch("/status", h.HandleUpdateTicketStatus)
		r.With(mw.RequireRole(domain.RoleAdmin)).Patch("/assign", h.HandleAssignTicket)
		r.With(mw.RequireRole(domain.RoleAdmin)).Delete("/", h.HandleDeleteTicket)
	})
}

// --- Request/Response DTOs ---

var validStatusValues = []string{"open", "pending", "closed"}

// CreateTicketRequest defines the expected JSON body for creating a ticket
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate validates the create ticket request
func (r *CreateTicketRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("title", r.Title).
		MaxLength("title", r.Title, domain.MaxTitleLength)

	v.Required("description", r.Description).
		MaxLength("description", r.Description, domain.MaxDescriptionLength)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateStatusRequest defines the expected JSON body for status updates
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate validates the update status request
func (r *UpdateStatusRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status).
		OneOf("status", r.Status, validStatusValues)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// AssignTicketRequest defines the expected JSON body for assigning a ticket
type AssignTicketRequest struct {
	UserID string `json:"userId"`
}

// Validate validates the assign ticket request
func (r *AssignTicketRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("userId", r.UserID).
		UUID("userId", r.UserID)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateTicketRequest defines the expected JSON body for a partial update.
// Absent fields are left unchanged.
type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Validate validates the partial update request
func (r *UpdateTicketRequest) Validate() error {
	v := validation.NewValidator()

	if r.Title != nil {
		v.Required("title", *r.Title).
			MaxLength("title", *r.Title, domain.MaxTitleLength)
	}
	if r.Description != nil {
		v.Required("description", *r.Description).
			MaxLength("description", *r.Description, domain.MaxDescriptionLength)
	}
	if r.Status != nil {
		v.Required("status", *r.Status).
			OneOf("status", *r.Status, validStatusValues)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UserRefDTO represents a resolved user reference in responses.
type UserRefDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TicketDTO defines the JSON response for tickets.
type TicketDTO struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	CreatedBy   *UserRefDTO `json:"createdBy"`
	AssignedTo  *UserRefDTO `json:"assignedTo"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   *string     `json:"updatedAt"`
}

func toUserRefDTO(ref *domain.UserRef) *UserRefDTO {
	if ref == nil {
		return nil
	}
	return &UserRefDTO{
		ID:    ref.ID.String(),
		Name:  ref.Name,
		Email: ref.Email,
	}
}

func toTicketDTO(ticket *domain.Ticket) TicketDTO {
	var updatedAt *string
	if ticket.UpdatedAt != nil {
		value := ticket.UpdatedAt.Format(time.RFC3339)
		updatedAt = &value
	}

	createdBy := toUserRefDTO(ticket.Creator)
	if createdBy == nil {
		createdBy = &UserRefDTO{ID: ticket.CreatedBy.String()}
	}

	return TicketDTO{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      string(ticket.Status),
		CreatedBy:   createdBy,
		AssignedTo:  toUserRefDTO(ticket.Assignee),
		CreatedAt:   ticket.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   updatedAt,
	}
}

func toTicketDTOs(tickets []*domain.Ticket) []TicketDTO {
	response := make([]TicketDTO, 0, len(tickets))
	for _, ticket := range tickets {
		response = append(response, toTicketDTO(ticket))
	}
	return response
}

// --- Handlers ---

// HandleCreateTicket handles POST /tickets
func (h *TicketHandler) HandleCreateTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreateTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.CreateTicketParams{
		Title:       req.Title,
		Description: req.Description,
		ActorID:     claims.UserID,
	}

	ticket, err := h.ticketService.CreateTicket(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket created",
		"ticket_id", ticket.ID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toTicketDTO(ticket))
}

// HandleListTickets handles GET /tickets (admin only)
func (h *TicketHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.ticketService.ListTickets(r.Context(), ports.ListTicketsFilter{
		Scope: ports.ScopeAll,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toTicketDTOs(tickets))
}

// HandleListMyTickets handles GET /tickets/me
func (h *TicketHandler) HandleListMyTickets(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	tickets, err := h.ticketService.ListTickets(r.Context(), ports.ListTicketsFilter{
		Scope:  ports.ScopeCreated,
		UserID: claims.UserID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toTicketDTOs(tickets))
}

// HandleListMyAssignedTickets handles GET /tickets/me/assigned
func (h *TicketHandler) HandleListMyAssignedTickets(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	tickets, err := h.ticketService.ListTickets(r.Context(), ports.ListTicketsFilter{
		Scope:  ports.ScopeAssigned,
		UserID: claims.UserID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toTicketDTOs(tickets))
}

// HandleGetTicket handles GET /tickets/{ticketID}
func (h *TicketHandler) HandleGetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.GetTicket(r.Context(), ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleUpdateTicketStatus handles PATCH /tickets/{ticketID}/status
func (h *TicketHandler) HandleUpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.UpdateStatusParams{
		TicketID: ticketID,
		Status:   domain.TicketStatus(req.Status),
		ActorID:  claims.UserID,
	}

	ticket, err := h.ticketService.UpdateStatus(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket status updated",
		"ticket_id", ticketID,
		"new_status", req.Status,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleUpdateTicket handles PATCH /tickets/{ticketID}
func (h *TicketHandler) HandleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.UpdateTicketParams{
		TicketID:    ticketID,
		Title:       req.Title,
		Description: req.Description,
		ActorID:     claims.UserID,
	}
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		params.Status = &status
	}

	ticket, err := h.ticketService.UpdateTicket(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket updated",
		"ticket_id", ticketID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleAssignTicket handles PATCH /tickets/{ticketID}/assign
func (h *TicketHandler) HandleAssignTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AssignTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	assigneeID, err := uuid.Parse(req.UserID)
	if err != nil {
		// This shouldn't happen since we validated the UUID format
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.AssignTicketParams{
		TicketID:   ticketID,
		AssigneeID: assigneeID,
		ActorID:    claims.UserID,
	}

	ticket, err := h.ticketService.AssignTicket(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket assigned",
		"ticket_id", ticketID,
		"assignee_id", assigneeID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleDeleteTicket handles DELETE /tickets/{ticketID}
func (h *TicketHandler) HandleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.ticketService.DeleteTicket(r.Context(), ticketID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket deleted",
		"ticket_id", ticketID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, SuccessResponse{Message: "Ticket deleted successfully"})
}

// --- Helper methods ---

// getClaims extracts and validates user claims from the request context
func (h *TicketHandler) getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "Not authorized",
			Code:  "UNAUTHORIZED",
		})
		return nil, false
	}
	return claims, true
}

// parseTicketID extracts and validates the ticket ID from the URL
func (h *TicketHandler) parseTicketID(r *http.Request) (int64, error) {
	ticketIDStr := chi.URLParam(r, "ticketID")
	ticketID, err := strconv.ParseInt(ticketIDStr, 10, 64)
	if err != nil || ticketID <= 0 {
		v := validation.NewValidator()
		v.Custom("ticketID", false, "Invalid ticket ID")
		return 0, v.Errors()
	}
	return ticketID, nil
}
