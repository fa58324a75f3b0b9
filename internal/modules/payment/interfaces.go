package payment

import (
	"context"

	"petcarehub/internal/domain"
)

type paymentRepo interface {
	Create(ctx context.Context, userID, serviceID int64, p *domain.Payment) error
	GetByExternalReference(ctx context.Context, ref string) (*domain.Payment, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Payment, error)
}

type serviceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}
