package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ticketline/api/internal/domain"
)

// BookingLister is the minimal interface needed for the bookings view.
type BookingLister interface {
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Ticket, error)
}

// HandleUserBookings returns an HTTP handler for a user's finalized tickets.
func HandleUserBookings(svc BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		userID, ok := parseUserBookingsPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		tickets, err := svc.ListUserBookings(r.Context(), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := bookingsResponse{Tickets: ticketResponses(tickets)}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func parseUserBookingsPath(path string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return 0, false
	}
	if parts[0] != "users" || parts[2] != "bookings" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type bookingsResponse struct {
	Tickets []ticketResponse `json:"tickets"`
}
