package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ticketline/api/internal/app"
	"github.com/ticketline/api/internal/domain"
)

// TicketReserver is the minimal interface needed to create a reservation.
type TicketReserver interface {
	Reserve(ctx context.Context, in app.ReserveInput) ([]domain.Ticket, error)
}

// HandleCreateReservation returns an HTTP handler for reserving tickets.
func HandleCreateReservation(svc TicketReserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createReservationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.UserID <= 0 || req.EventID <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidID, "user_id and event_id are required")
			return
		}

		lines := make([]domain.TierQuantity, 0, len(req.Lines))
		for _, line := range req.Lines {
			tier, err := domain.ParseTier(line.Tier)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidTier, err.Error())
				return
			}
			if line.Quantity < 0 {
				writeError(w, http.StatusBadRequest, codeInvalidQuantity, domain.ErrInvalidQuantity.Error())
				return
			}
			lines = append(lines, domain.TierQuantity{Tier: tier, Quantity: line.Quantity})
		}

		tickets, err := svc.Reserve(r.Context(), app.ReserveInput{
			UserID:  req.UserID,
			EventID: req.EventID,
			Lines:   lines,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := reservationResponse{Tickets: ticketResponses(tickets)}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type createReservationRequest struct {
	UserID  int64                 `json:"user_id"`
	EventID int64                 `json:"event_id"`
	Lines   []reservationLineBody `json:"lines"`
}

type reservationLineBody struct {
	Tier     string `json:"tier"`
	Quantity int    `json:"quantity"`
}

type reservationResponse struct {
	Tickets []ticketResponse `json:"tickets"`
}

type ticketResponse struct {
	ID          int64      `json:"id"`
	EventID     int64      `json:"event_id"`
	Tier        string     `json:"tier"`
	Status      string     `json:"status"`
	OwnerID     *int64     `json:"owner_id,omitempty"`
	HeldAt      *time.Time `json:"held_at,omitempty"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
}

func ticketResponses(tickets []domain.Ticket) []ticketResponse {
	out := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketResponse{
			ID:          t.ID,
			EventID:     t.EventID,
			Tier:        string(t.Tier),
			Status:      string(t.Status),
			OwnerID:     t.OwnerID,
			HeldAt:      t.HeldAt,
			FinalizedAt: t.FinalizedAt,
		})
	}
	return out
}
