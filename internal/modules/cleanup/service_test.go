package cleanup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcarehub/internal/database"
	"petcarehub/internal/domain"
	"petcarehub/internal/repository"
)

func setupService(t *testing.T) (*Service, *repository.BookingRepository) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.Migrate(db))

	repo := repository.NewBookingRepository(db)
	return NewService(repo, nil), repo
}

func seedBooking(t *testing.T, repo *repository.BookingRepository, b domain.Booking) domain.Booking {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &b))
	return b
}

func ownerBooking(serviceID, petID int64, date string, status domain.BookingStatus, paymentStatus domain.PaymentStatus) domain.Booking {
	return domain.Booking{
		PetOwnerID:    2,
		ServiceID:     serviceID,
		PetID:         petID,
		ProviderID:    3,
		BookingDate:   date,
		Status:        status,
		PaymentStatus: paymentStatus,
	}
}

func TestCleanupDuplicates_KeepsConfirmedSurvivor(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	kept := seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingConfirmed, domain.PaymentUnpaid))
	seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingPending, domain.PaymentUnpaid))
	seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingPending, domain.PaymentUnpaid))
	other := seedBooking(t, repo, ownerBooking(1, 1, "2024-03-22", domain.BookingPending, domain.PaymentUnpaid))

	res, err := svc.CleanupDuplicates(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, res.DuplicateGroups)
	assert.Equal(t, 2, res.DeletedCount)
	assert.Equal(t, 2, res.RemainingBookings)
	assert.Empty(t, res.Anomalies)

	left, err := repo.GetByOwnerID(ctx, 2)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, kept.ID, left[0].ID)
	assert.Equal(t, other.ID, left[1].ID)
}

func TestCleanupDuplicates_SecondRunIsNoOp(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingConfirmed, domain.PaymentUnpaid))
	seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingPending, domain.PaymentUnpaid))
	seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingPending, domain.PaymentUnpaid))

	first, err := svc.CleanupDuplicates(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2, first.DeletedCount)

	second, err := svc.CleanupDuplicates(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, second.DuplicateGroups)
	assert.Equal(t, 0, second.DeletedCount)
	assert.Equal(t, 1, second.RemainingBookings)
}

func TestCleanupDuplicates_PaidBookingWinsOverLowerIDs(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingConfirmed, domain.PaymentUnpaid))
	paid := seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingConfirmed, domain.PaymentPaid))
	seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingPending, domain.PaymentUnpaid))

	res, err := svc.CleanupDuplicates(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, res.DuplicateGroups)
	assert.Equal(t, 2, res.DeletedCount)
	assert.Equal(t, 1, res.RemainingBookings)

	left, err := repo.GetByOwnerID(ctx, 2)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, paid.ID, left[0].ID)
}

func TestCleanupDuplicates_MultiplePaidAreAnomalies(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	firstPaid := seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingConfirmed, domain.PaymentPaid))
	secondPaid := seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingConfirmed, domain.PaymentPaid))
	seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingPending, domain.PaymentUnpaid))

	res, err := svc.CleanupDuplicates(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, res.DuplicateGroups)
	assert.Equal(t, 1, res.DeletedCount)
	assert.Equal(t, 2, res.RemainingBookings)
	assert.Equal(t, []int64{secondPaid.ID}, res.Anomalies)

	left, err := repo.GetByOwnerID(ctx, 2)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, firstPaid.ID, left[0].ID)
	assert.Equal(t, secondPaid.ID, left[1].ID)
}

func TestCleanupDuplicates_NoDuplicates(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	seedBooking(t, repo, ownerBooking(1, 1, "2024-03-21", domain.BookingConfirmed, domain.PaymentUnpaid))
	seedBooking(t, repo, ownerBooking(2, 1, "2024-03-21", domain.BookingConfirmed, domain.PaymentUnpaid))

	res, err := svc.CleanupDuplicates(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, res.DuplicateGroups)
	assert.Equal(t, 0, res.DeletedCount)
	assert.Equal(t, 2, res.RemainingBookings)
}

func TestChooseSurvivor(t *testing.T) {
	t.Run("paid beats confirmed regardless of id", func(t *testing.T) {
		survivor, anomalies := chooseSurvivor([]domain.Booking{
			{ID: 1, Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentUnpaid},
			{ID: 2, Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPaid},
		})
		assert.Equal(t, int64(2), survivor.ID)
		assert.Empty(t, anomalies)
	})

	t.Run("lowest paid id survives, the rest are anomalies", func(t *testing.T) {
		survivor, anomalies := chooseSurvivor([]domain.Booking{
			{ID: 1, PaymentStatus: domain.PaymentPaid},
			{ID: 2, PaymentStatus: domain.PaymentPaid},
			{ID: 3, PaymentStatus: domain.PaymentUnpaid},
		})
		assert.Equal(t, int64(1), survivor.ID)
		assert.Equal(t, []int64{2}, anomalies)
	})

	t.Run("confirmed beats pending", func(t *testing.T) {
		survivor, _ := chooseSurvivor([]domain.Booking{
			{ID: 1, Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid},
			{ID: 2, Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentUnpaid},
		})
		assert.Equal(t, int64(2), survivor.ID)
	})

	t.Run("all pending keeps the lowest id", func(t *testing.T) {
		survivor, _ := chooseSurvivor([]domain.Booking{
			{ID: 5, Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid},
			{ID: 9, Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid},
		})
		assert.Equal(t, int64(5), survivor.ID)
	})
}

func TestPlanCleanup_GroupsAcrossKeys(t *testing.T) {
	groups, deleteIDs, anomalies := planCleanup([]domain.Booking{
		{ID: 1, ServiceID: 1, PetID: 1, BookingDate: "2024-03-21", Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentUnpaid},
		{ID: 2, ServiceID: 1, PetID: 1, BookingDate: "2024-03-21", Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid},
		{ID: 3, ServiceID: 1, PetID: 2, BookingDate: "2024-03-21", Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid},
		{ID: 4, ServiceID: 1, PetID: 2, BookingDate: "2024-03-21", Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid},
		{ID: 5, ServiceID: 2, PetID: 1, BookingDate: "2024-03-21", Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid},
	})

	assert.Equal(t, 2, groups)
	assert.ElementsMatch(t, []int64{2, 4}, deleteIDs)
	assert.Empty(t, anomalies)
}
