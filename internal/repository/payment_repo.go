package repository

import (
	"context"
	"errors"
	"time"

	"petcarehub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	ExternalReference string     `gorm:"column:external_reference;uniqueIndex"`
	UserID            int64      `gorm:"column:user_id;index"`
	ServiceID         int64      `gorm:"column:service_id"`
	ServiceName       string     `gorm:"column:service_name"`
	Amount            int64      `gorm:"column:amount"`
	Currency          string     `gorm:"column:currency"`
	Status            string     `gorm:"column:status"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	CompletedAt       *time.Time `gorm:"column:completed_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:                m.ID,
		ExternalReference: m.ExternalReference,
		ServiceName:       m.ServiceName,
		Amount:            m.Amount,
		Currency:          m.Currency,
		Status:            domain.ProcessorPaymentStatus(m.Status),
		CreatedAt:         m.CreatedAt,
		CompletedAt:       m.CompletedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, userID, serviceID int64, p *domain.Payment) error {
	m := paymentModel{
		ExternalReference: p.ExternalReference,
		UserID:            userID,
		ServiceID:         serviceID,
		ServiceName:       p.ServiceName,
		Amount:            p.Amount,
		Currency:          p.Currency,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByExternalReference(ctx context.Context, ref string) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).Where("external_reference = ?", ref).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Payment, error) {
	var rows []paymentModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

// CompleteAndMarkPaid performs the reconciler's dual write: payment ->
// completed and booking -> paid, in one transaction. The payment row is locked
// for the duration so concurrent completions for the same reference serialize;
// the second writer observes the terminal status and returns changed=false.
// If the booking update touches zero rows the transaction rolls back and the
// payment stays pending.
func (r *PaymentRepository) CompleteAndMarkPaid(ctx context.Context, ref string, bookingID int64, completedAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p paymentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_reference = ?", ref).
			First(&p).Error; err != nil {
			return err
		}
		if p.Status != string(domain.PaymentStatusPending) {
			changed = false
			return nil
		}

		res := tx.Model(&paymentModel{}).
			Where("external_reference = ? AND status = ?", ref, string(domain.PaymentStatusPending)).
			Updates(map[string]interface{}{
				"status":       string(domain.PaymentStatusCompleted),
				"completed_at": completedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("payment row not updated")
		}

		res = tx.Model(&bookingModel{}).
			Where("id = ?", bookingID).
			Updates(map[string]interface{}{
				"payment_status":     string(domain.PaymentPaid),
				"external_reference": ref,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("booking row not updated")
		}

		changed = true
		return nil
	})
	return changed, err
}

// MarkFailed moves a pending payment to failed. Terminal payments are left
// untouched and reported as changed=false.
func (r *PaymentRepository) MarkFailed(ctx context.Context, ref string) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p paymentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_reference = ?", ref).
			First(&p).Error; err != nil {
			return err
		}
		if p.Status != string(domain.PaymentStatusPending) {
			changed = false
			return nil
		}

		res := tx.Model(&paymentModel{}).
			Where("external_reference = ? AND status = ?", ref, string(domain.PaymentStatusPending)).
			Update("status", string(domain.PaymentStatusFailed))
		if res.Error != nil {
			return res.Error
		}
		changed = res.RowsAffected > 0
		return nil
	})
	return changed, err
}
