package booking

import (
	"context"

	"petcarehub/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Booking, error)
	GetByProviderID(ctx context.Context, providerID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
}

type ServiceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type PetReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}
