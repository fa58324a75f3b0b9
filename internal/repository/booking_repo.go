package repository

import (
	"context"
	"time"

	"petcarehub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	PetOwnerID        int64     `gorm:"column:pet_owner_id;index"`
	ServiceID         int64     `gorm:"column:service_id;index"`
	PetID             int64     `gorm:"column:pet_id"`
	ProviderID        int64     `gorm:"column:provider_id;index"`
	BookingDate       string    `gorm:"column:booking_date"`
	Status            string    `gorm:"column:status"`
	PaymentStatus     string    `gorm:"column:payment_status"`
	ExternalReference *string   `gorm:"column:external_reference"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var ref string
	if m.ExternalReference != nil {
		ref = *m.ExternalReference
	}

	return &domain.Booking{
		ID:                m.ID,
		PetOwnerID:        m.PetOwnerID,
		ServiceID:         m.ServiceID,
		PetID:             m.PetID,
		ProviderID:        m.ProviderID,
		BookingDate:       m.BookingDate,
		Status:            domain.BookingStatus(m.Status),
		PaymentStatus:     domain.PaymentStatus(m.PaymentStatus),
		ExternalReference: ref,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var ref *string
	if b.ExternalReference != "" {
		v := b.ExternalReference
		ref = &v
	}

	return bookingModel{
		ID:                b.ID,
		PetOwnerID:        b.PetOwnerID,
		ServiceID:         b.ServiceID,
		PetID:             b.PetID,
		ProviderID:        b.ProviderID,
		BookingDate:       b.BookingDate,
		Status:            string(b.Status),
		PaymentStatus:     string(b.PaymentStatus),
		ExternalReference: ref,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByExternalReference(ctx context.Context, ref string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("external_reference = ?", ref).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	return r.findAll(ctx, "pet_owner_id = ?", ownerID)
}

func (r *BookingRepository) GetByProviderID(ctx context.Context, providerID int64) ([]domain.Booking, error) {
	return r.findAll(ctx, "provider_id = ?", providerID)
}

// FindPayableByService returns confirmed, unpaid bookings for a service in
// descending id order, so the first row is the inferred-match tie-break winner.
func (r *BookingRepository) FindPayableByService(ctx context.Context, serviceID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("service_id = ? AND status = ? AND payment_status = ?",
			serviceID, string(domain.BookingConfirmed), string(domain.PaymentUnpaid)).
		Order("id DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CleanupDuplicates runs the duplicate repair for one owner inside a single
// transaction. choose receives all of the owner's bookings (locked for the
// duration of the transaction) and returns the ids to delete plus the ids of
// flagged anomalies; payment_status is re-checked immediately before each
// delete so a booking paid by a concurrent reconciliation is skipped.
func (r *BookingRepository) CleanupDuplicates(
	ctx context.Context,
	ownerID int64,
	choose func(bookings []domain.Booking) (groups int, deleteIDs []int64, anomalyIDs []int64),
) (groups int, deleted int, remaining int, anomalies []int64, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []bookingModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pet_owner_id = ?", ownerID).
			Order("id").
			Find(&rows).Error; err != nil {
			return err
		}

		bookings := make([]domain.Booking, 0, len(rows))
		for _, m := range rows {
			bookings = append(bookings, *toDomainBooking(m))
		}

		var deleteIDs []int64
		groups, deleteIDs, anomalies = choose(bookings)

		for _, id := range deleteIDs {
			res := tx.Where("id = ? AND payment_status = ?", id, string(domain.PaymentUnpaid)).
				Delete(&bookingModel{})
			if res.Error != nil {
				return res.Error
			}
			deleted += int(res.RowsAffected)
		}

		remaining = len(bookings) - deleted
		return nil
	})
	if err != nil {
		return 0, 0, 0, nil, err
	}
	return groups, deleted, remaining, anomalies, nil
}

func (r *BookingRepository) findAll(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).Where(query, args...).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
