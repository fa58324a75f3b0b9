package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcarehub/internal/database"
	"petcarehub/internal/repository"
)

func setupCatalog(t *testing.T) *Service {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.Migrate(db))

	return NewService(repository.NewPetRepository(db), repository.NewServiceRepository(db))
}

func TestCreatePet(t *testing.T) {
	svc := setupCatalog(t)
	ctx := context.Background()

	p, err := svc.CreatePet(ctx, 2, CreatePetRequest{Name: "Rex", Species: "dog", Breed: "labrador", Age: 3})
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, int64(2), p.OwnerID)
	assert.Equal(t, "Rex", p.Name)

	pets, err := svc.ListPets(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, pets, 1)
}

func TestCreatePet_Validation(t *testing.T) {
	svc := setupCatalog(t)

	_, err := svc.CreatePet(context.Background(), 2, CreatePetRequest{Name: "  ", Species: "dog"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreatePet(context.Background(), 2, CreatePetRequest{Name: "Rex", Species: "dog", Age: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdatePet_OwnershipEnforced(t *testing.T) {
	svc := setupCatalog(t)
	ctx := context.Background()

	p, err := svc.CreatePet(ctx, 2, CreatePetRequest{Name: "Rex", Species: "dog"})
	require.NoError(t, err)

	_, err = svc.UpdatePet(ctx, p.ID, 99, UpdatePetRequest{Name: "Buddy", Species: "dog"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdatePet(ctx, p.ID, 2, UpdatePetRequest{Name: "Buddy", Species: "dog", Age: 4})
	require.NoError(t, err)
	assert.Equal(t, "Buddy", updated.Name)
	assert.Equal(t, 4, updated.Age)
}

func TestDeletePet(t *testing.T) {
	svc := setupCatalog(t)
	ctx := context.Background()

	p, err := svc.CreatePet(ctx, 2, CreatePetRequest{Name: "Rex", Species: "dog"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePet(ctx, p.ID, 99), ErrForbidden)
	require.NoError(t, svc.DeletePet(ctx, p.ID, 2))

	pets, err := svc.ListPets(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestCreateService(t *testing.T) {
	svc := setupCatalog(t)
	ctx := context.Background()

	created, err := svc.CreateService(ctx, 10, CreateServiceRequest{Name: "Dog Grooming", Description: "Full wash", Price: 50.00})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(10), created.ProviderID)
	assert.Equal(t, 50.00, created.Price)

	got, err := svc.GetService(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dog Grooming", got.Name)
}

func TestCreateService_Validation(t *testing.T) {
	svc := setupCatalog(t)
	ctx := context.Background()

	_, err := svc.CreateService(ctx, 10, CreateServiceRequest{Name: "Walk", Price: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateService(ctx, 10, CreateServiceRequest{Name: "Walk", Price: -5})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateService(ctx, 10, CreateServiceRequest{Name: "", Price: 10})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateService_PriceRoundedToMinorUnits(t *testing.T) {
	svc := setupCatalog(t)

	created, err := svc.CreateService(context.Background(), 10, CreateServiceRequest{Name: "Walk", Price: 19.999})
	require.NoError(t, err)
	assert.Equal(t, 20.00, created.Price)
}

func TestDeleteService_OwnershipEnforced(t *testing.T) {
	svc := setupCatalog(t)
	ctx := context.Background()

	created, err := svc.CreateService(ctx, 10, CreateServiceRequest{Name: "Dog Grooming", Price: 50.00})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteService(ctx, created.ID, 11), ErrForbidden)
	require.NoError(t, svc.DeleteService(ctx, created.ID, 10))

	_, err = svc.GetService(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListServices(t *testing.T) {
	svc := setupCatalog(t)
	ctx := context.Background()

	_, err := svc.CreateService(ctx, 10, CreateServiceRequest{Name: "Dog Grooming", Price: 50.00})
	require.NoError(t, err)
	_, err = svc.CreateService(ctx, 11, CreateServiceRequest{Name: "Cat Sitting", Price: 30.00})
	require.NoError(t, err)

	all, err := svc.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListProviderServices(ctx, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Dog Grooming", mine[0].Name)
}
