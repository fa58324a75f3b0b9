package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"petcarehub/internal/domain"
)

type Service struct {
	bookings BookingRepository
	services ServiceReader
	pets     PetReader
}

func NewService(bookings BookingRepository, services ServiceReader, pets PetReader) *Service {
	return &Service{bookings: bookings, services: services, pets: pets}
}

// CreateBooking books a service for one of the owner's pets. The provider id
// is denormalized from the service so provider listings need no join.
func (s *Service) CreateBooking(ctx context.Context, ownerID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if _, err := time.Parse("2006-01-02", req.BookingDate); err != nil {
		return nil, ErrValidation
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	pet, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	if pet.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	b := &domain.Booking{
		PetOwnerID:    ownerID,
		ServiceID:     svc.ID,
		PetID:         pet.ID,
		ProviderID:    svc.ProviderID,
		BookingDate:   req.BookingDate,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.PetOwnerID != userID && b.ProviderID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	return s.bookings.GetByOwnerID(ctx, ownerID)
}

func (s *Service) ListByProvider(ctx context.Context, providerID int64) ([]domain.Booking, error) {
	return s.bookings.GetByProviderID(ctx, providerID)
}

// UpdateStatus applies one of the allowed transitions. Cancelled is terminal
// and paid bookings cannot be cancelled.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, userID int64, status string) (*domain.Booking, error) {
	next := domain.BookingStatus(status)
	if next != domain.BookingConfirmed && next != domain.BookingCancelled {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.PetOwnerID != userID && b.ProviderID != userID {
		return nil, ErrForbidden
	}
	if !transitionAllowed(b, next) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, next); err != nil {
		return nil, err
	}
	b.Status = next
	return b, nil
}

func transitionAllowed(b *domain.Booking, next domain.BookingStatus) bool {
	switch b.Status {
	case domain.BookingPending:
		return next == domain.BookingConfirmed || next == domain.BookingCancelled
	case domain.BookingConfirmed:
		return next == domain.BookingCancelled && b.PaymentStatus != domain.PaymentPaid
	default:
		return false
	}
}
