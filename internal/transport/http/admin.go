package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ticketline/api/internal/app"
	"github.com/ticketline/api/internal/domain"
)

// AdminEventService is the minimal interface needed for admin event endpoints.
type AdminEventService interface {
	CreateEvent(ctx context.Context, name string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]app.EventSummary, error)
}

// AdminTicketService is the minimal interface needed to provision tickets.
type AdminTicketService interface {
	AddTickets(ctx context.Context, in app.AddTicketsInput) ([]domain.Ticket, error)
}

// AdminUserService is the minimal interface needed to register users.
type AdminUserService interface {
	CreateUser(ctx context.Context, name string) (domain.User, error)
}

// HandleAdminEvents returns an HTTP handler for event creation and listing.
func HandleAdminEvents(svc AdminEventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			summaries, err := svc.ListEvents(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]eventResponse, 0, len(summaries))
			for _, summary := range summaries {
				resp = append(resp, newEventResponse(summary))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			var req createEventRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.Name == "" {
				writeError(w, http.StatusBadRequest, codeEventNameRequired, domain.ErrEventNameRequired.Error())
				return
			}

			event, err := svc.CreateEvent(r.Context(), req.Name)
			if err != nil {
				writeDomainError(w, err)
				return
			}

			resp := newEventResponse(app.EventSummary{Event: event})
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(resp)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleAdminEventTickets returns an HTTP handler for bulk ticket
// provisioning under /admin/events/{id}/tickets.
func HandleAdminEventTickets(svc AdminTicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, ok := parseAdminEventTicketsPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req addTicketsRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		tier, err := domain.ParseTier(req.Tier)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidTier, err.Error())
			return
		}
		if req.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidQuantity, domain.ErrInvalidQuantity.Error())
			return
		}

		tickets, err := svc.AddTickets(r.Context(), app.AddTicketsInput{
			EventID:  eventID,
			Tier:     tier,
			Quantity: req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := addTicketsResponse{
			EventID:  eventID,
			Tier:     string(tier),
			Quantity: len(tickets),
			Tickets:  ticketResponses(tickets),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleAdminUsers returns an HTTP handler for registering users.
func HandleAdminUsers(svc AdminUserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createUserRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, codeUserNameRequired, domain.ErrUserNameRequired.Error())
			return
		}

		user, err := svc.CreateUser(r.Context(), req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := userResponse{ID: user.ID, Name: user.Name}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type createEventRequest struct {
	Name string `json:"name"`
}

type eventResponse struct {
	ID    int64               `json:"id"`
	Name  string              `json:"name"`
	Tiers []tierCountResponse `json:"tiers"`
}

type tierCountResponse struct {
	Tier      string `json:"tier"`
	Available int    `json:"available"`
}

func newEventResponse(summary app.EventSummary) eventResponse {
	tiers := make([]tierCountResponse, 0, len(summary.TierCounts))
	for _, count := range summary.TierCounts {
		tiers = append(tiers, tierCountResponse{
			Tier:      string(count.Tier),
			Available: count.Available,
		})
	}
	return eventResponse{
		ID:    summary.Event.ID,
		Name:  summary.Event.Name,
		Tiers: tiers,
	}
}

type addTicketsRequest struct {
	Tier     string `json:"tier"`
	Quantity int    `json:"quantity"`
}

type addTicketsResponse struct {
	EventID  int64            `json:"event_id"`
	Tier     string           `json:"tier"`
	Quantity int              `json:"quantity"`
	Tickets  []ticketResponse `json:"tickets"`
}

type createUserRequest struct {
	Name string `json:"name"`
}

type userResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func parseAdminEventTicketsPath(path string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 {
		return 0, false
	}
	if parts[0] != "admin" || parts[1] != "events" || parts[3] != "tickets" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
