package catalog

import (
	"context"
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"

	"petcarehub/internal/domain"
)

type Service struct {
	pets     PetRepository
	services ServiceRepository
}

func NewService(pets PetRepository, services ServiceRepository) *Service {
	return &Service{pets: pets, services: services}
}

func (s *Service) CreatePet(ctx context.Context, ownerID int64, req CreatePetRequest) (*domain.Pet, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Species) == "" || req.Age < 0 {
		return nil, ErrValidation
	}

	p := &domain.Pet{
		OwnerID: ownerID,
		Name:    strings.TrimSpace(req.Name),
		Species: strings.TrimSpace(req.Species),
		Breed:   strings.TrimSpace(req.Breed),
		Age:     req.Age,
	}
	if err := s.pets.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPets(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	return s.pets.GetByOwnerID(ctx, ownerID)
}

func (s *Service) UpdatePet(ctx context.Context, petID, ownerID int64, req UpdatePetRequest) (*domain.Pet, error) {
	p, err := s.ownedPet(ctx, petID, ownerID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Species) == "" || req.Age < 0 {
		return nil, ErrValidation
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Species = strings.TrimSpace(req.Species)
	p.Breed = strings.TrimSpace(req.Breed)
	p.Age = req.Age
	if err := s.pets.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePet(ctx context.Context, petID, ownerID int64) error {
	if _, err := s.ownedPet(ctx, petID, ownerID); err != nil {
		return err
	}
	return s.pets.Delete(ctx, petID)
}

func (s *Service) ownedPet(ctx context.Context, petID, ownerID int64) (*domain.Pet, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return p, nil
}

// CreateService publishes a provider offering. The price is validated to land
// on a whole number of minor units so payment amounts derived from it are
// exact.
func (s *Service) CreateService(ctx context.Context, providerID int64, req CreateServiceRequest) (*domain.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Price <= 0 || math.IsNaN(req.Price) || math.IsInf(req.Price, 0) {
		return nil, ErrValidation
	}

	svc := &domain.Service{
		ProviderID:  providerID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       math.Round(req.Price*100) / 100,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.GetAll(ctx)
}

func (s *Service) ListProviderServices(ctx context.Context, providerID int64) ([]domain.Service, error) {
	return s.services.GetByProviderID(ctx, providerID)
}

func (s *Service) DeleteService(ctx context.Context, serviceID, providerID int64) error {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if svc.ProviderID != providerID {
		return ErrForbidden
	}
	return s.services.Delete(ctx, serviceID)
}
