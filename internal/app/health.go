package app

import (
	"context"

	"github.com/PabloST8/xcorte-sub001/internal/booking"
)

// lastKnown is implemented by gates that cache their last check.
type lastKnown interface {
	LastKnown() bool
}

type healthSource struct {
	session  booking.SessionProvider
	bookings booking.Service
}

// PrimaryUp prefers the cached state so health checks and scrapes do not
// ping the database themselves.
func (h *healthSource) PrimaryUp() bool {
	if lk, ok := h.session.(lastKnown); ok {
		return lk.LastKnown()
	}
	return h.session.HasSession(context.Background())
}

func (h *healthSource) PendingLocal() map[string]int {
	return h.bookings.PendingLocal()
}
