package cleanup

import (
	"context"

	"petcarehub/internal/domain"
)

type bookingCleaner interface {
	CleanupDuplicates(
		ctx context.Context,
		ownerID int64,
		choose func(bookings []domain.Booking) (groups int, deleteIDs []int64, anomalyIDs []int64),
	) (groups int, deleted int, remaining int, anomalies []int64, err error)
}
