package reconcile

import (
	"context"
	"time"

	"petcarehub/internal/domain"
)

type paymentRepo interface {
	GetByExternalReference(ctx context.Context, ref string) (*domain.Payment, error)
	CompleteAndMarkPaid(ctx context.Context, ref string, bookingID int64, completedAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, ref string) (bool, error)
}

type bookingRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByExternalReference(ctx context.Context, ref string) (*domain.Booking, error)
	FindPayableByService(ctx context.Context, serviceID int64) ([]domain.Booking, error)
}

type serviceReader interface {
	GetByName(ctx context.Context, name string) (*domain.Service, error)
}

// NotificationSender pushes realtime updates to booking owners. A nil sender
// disables notifications.
type NotificationSender interface {
	NotifyBookingPaid(ctx context.Context, ownerID, bookingID, paymentID int64) error
}
