package catalog

import (
	"context"

	"petcarehub/internal/domain"
)

type PetRepository interface {
	Create(ctx context.Context, p *domain.Pet) error
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Pet, error)
	Update(ctx context.Context, p *domain.Pet) error
	Delete(ctx context.Context, id int64) error
}

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetAll(ctx context.Context) ([]domain.Service, error)
	GetByProviderID(ctx context.Context, providerID int64) ([]domain.Service, error)
	Delete(ctx context.Context, id int64) error
}
