package notification

import (
	"context"
	"time"
)

// Event is the payload pushed to connected clients.
type Event struct {
	Type      string    `json:"type"`
	BookingID int64     `json:"booking_id,omitempty"`
	PaymentID int64     `json:"payment_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Service delivers reconciliation events over the hub. Delivery is best
// effort; offline users simply miss the push and see the new state on their
// next fetch.
type Service struct {
	hub     *Hub
	loggerf func(format string, args ...interface{})
}

func NewService(hub *Hub, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(format string, args ...interface{}) {}
	}
	return &Service{hub: hub, loggerf: loggerf}
}

func (s *Service) NotifyBookingPaid(_ context.Context, ownerID, bookingID, paymentID int64) error {
	delivered := s.hub.SendToUser(ownerID, Event{
		Type:      "booking_paid",
		BookingID: bookingID,
		PaymentID: paymentID,
		Timestamp: time.Now().UTC(),
	})
	if !delivered {
		s.loggerf("level=info msg=\"notification skipped, user offline\" user_id=%d booking_id=%d", ownerID, bookingID)
	}
	return nil
}
