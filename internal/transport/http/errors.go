package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ticketline/api/internal/domain"
)

const (
	codeMethodNotAllowed      = "method_not_allowed"
	codeNotFound              = "not_found"
	codeInvalidRequestBody    = "invalid_request_body"
	codeInvalidID             = "invalid_id"
	codeInvalidTier           = "invalid_tier"
	codeInvalidQuantity       = "invalid_quantity"
	codeEventNameRequired     = "event_name_required"
	codeUserNameRequired      = "user_name_required"
	codeUserNotFound          = "user_not_found"
	codeEventNotFound         = "event_not_found"
	codeTicketNotFound        = "ticket_not_found"
	codeOwnershipMismatch     = "ownership_mismatch"
	codeInvalidState          = "invalid_state"
	codeDuplicateTicket       = "duplicate_ticket"
	codeInsufficientInventory = "insufficient_inventory"
	codeReservationConflict   = "reservation_conflict"
	codeForbidden             = "forbidden"
	codeInternalError         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`

	// Set for insufficient_inventory.
	Tier      string `json:"tier,omitempty"`
	Available *int   `json:"available,omitempty"`
	Requested *int   `json:"requested,omitempty"`

	// Set for invalid_state.
	TicketID *int64 `json:"ticket_id,omitempty"`
	Status   string `json:"status,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps the business error taxonomy onto HTTP statuses and
// stable JSON codes. Anything unrecognized is a storage or infrastructure
// failure and surfaces as a retryable 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var insufficient *domain.InsufficientInventoryError
	if errors.As(err, &insufficient) {
		writeErrorResponse(w, http.StatusConflict, errorResponse{
			Error:     insufficient.Error(),
			Code:      codeInsufficientInventory,
			Tier:      string(insufficient.Tier),
			Available: &insufficient.Available,
			Requested: &insufficient.Requested,
		})
		return
	}

	var invalidState *domain.InvalidStateError
	if errors.As(err, &invalidState) {
		writeErrorResponse(w, http.StatusConflict, errorResponse{
			Error:    invalidState.Error(),
			Code:     codeInvalidState,
			TicketID: &invalidState.TicketID,
			Status:   string(invalidState.Status),
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, codeUserNotFound, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrTicketNotFound):
		writeError(w, http.StatusNotFound, codeTicketNotFound, err.Error())
	case errors.Is(err, domain.ErrOwnershipMismatch):
		writeError(w, http.StatusForbidden, codeOwnershipMismatch, err.Error())
	case errors.Is(err, domain.ErrReservationConflict):
		writeError(w, http.StatusConflict, codeReservationConflict, err.Error())
	case errors.Is(err, domain.ErrDuplicateTicket):
		writeError(w, http.StatusBadRequest, codeDuplicateTicket, err.Error())
	case errors.Is(err, domain.ErrInvalidTier):
		writeError(w, http.StatusBadRequest, codeInvalidTier, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrEventNameRequired):
		writeError(w, http.StatusBadRequest, codeEventNameRequired, err.Error())
	case errors.Is(err, domain.ErrUserNameRequired):
		writeError(w, http.StatusBadRequest, codeUserNameRequired, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
