package repository

import (
	"context"
	"time"

	"petcarehub/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	ProviderID  int64     `gorm:"column:provider_id;index"`
	Name        string    `gorm:"column:name;index"`
	Description *string   `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.Service {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}

	return &domain.Service{
		ID:          m.ID,
		ProviderID:  m.ProviderID,
		Name:        m.Name,
		Description: desc,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toServiceModel(s *domain.Service) serviceModel {
	var desc *string
	if s.Description != "" {
		v := s.Description
		desc = &v
	}

	return serviceModel{
		ID:          s.ID,
		ProviderID:  s.ProviderID,
		Name:        s.Name,
		Description: desc,
		Price:       s.Price,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := toServiceModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

// GetByName resolves a service by exact name match. The denormalized
// payments.service_name string is the only join key available to the
// reconciler, so the match is intentionally strict.
func (r *ServiceRepository) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) GetAll(ctx context.Context) ([]domain.Service, error) {
	var rows []serviceModel
	tx := r.db.WithContext(ctx).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

func (r *ServiceRepository) GetByProviderID(ctx context.Context, providerID int64) ([]domain.Service, error) {
	var rows []serviceModel
	tx := r.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&serviceModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
