package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ticketline/api/internal/app"
)

// TicketConfirmer is the minimal interface needed to resolve a reservation.
type TicketConfirmer interface {
	Confirm(ctx context.Context, in app.ConfirmInput) (app.ConfirmResult, error)
}

// HandleConfirm returns an HTTP handler for confirming or releasing held
// tickets based on the payment outcome.
func HandleConfirm(svc TicketConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req confirmRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.UserID <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidID, "user_id is required")
			return
		}
		if len(req.TicketIDs) == 0 {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "ticket_ids is required")
			return
		}

		res, err := svc.Confirm(r.Context(), app.ConfirmInput{
			UserID:           req.UserID,
			TicketIDs:        req.TicketIDs,
			PaymentSucceeded: req.PaymentSucceeded,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if res.Released {
			_ = json.NewEncoder(w).Encode(confirmReleasedResponse{
				Released: true,
				Message:  res.Message,
			})
			return
		}
		_ = json.NewEncoder(w).Encode(confirmFinalizedResponse{
			Finalized: ticketResponses(res.Finalized),
		})
	}
}

type confirmRequest struct {
	UserID           int64   `json:"user_id"`
	TicketIDs        []int64 `json:"ticket_ids"`
	PaymentSucceeded bool    `json:"payment_succeeded"`
}

type confirmFinalizedResponse struct {
	Finalized []ticketResponse `json:"finalized"`
}

type confirmReleasedResponse struct {
	Released bool   `json:"released"`
	Message  string `json:"message"`
}
