package cleanup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"petcarehub/internal/domain"
)

const defaultStoreTimeout = 5 * time.Second

type Service struct {
	bookings bookingCleaner
	timeout  time.Duration
	loggerf  func(format string, args ...interface{})
}

func NewService(bookings bookingCleaner, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(format string, args ...interface{}) {}
	}
	return &Service{bookings: bookings, timeout: storeTimeoutFromEnv(), loggerf: loggerf}
}

func storeTimeoutFromEnv() time.Duration {
	raw := os.Getenv("CLEANUP_STORE_TIMEOUT_MS")
	if raw == "" {
		return defaultStoreTimeout
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return defaultStoreTimeout
	}
	return time.Duration(ms) * time.Millisecond
}

// CleanupDuplicates removes redundant bookings for one owner. Bookings are
// duplicates when they share service, pet and date; one survivor is kept per
// group and the rest are deleted. Paid bookings are never deleted, and a group
// holding more than one paid booking is reported as an anomaly instead of
// repaired. Running the cleanup twice in a row leaves the second run with
// nothing to delete.
func (s *Service) CleanupDuplicates(ctx context.Context, ownerID int64) (*CleanupResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	groups, deleted, remaining, anomalies, err := s.bookings.CleanupDuplicates(ctx, ownerID, planCleanup)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrCleanup, err)
	}

	s.loggerf("level=info msg=\"duplicate cleanup\" owner_id=%d groups=%d deleted=%d remaining=%d anomalies=%d",
		ownerID, groups, deleted, remaining, len(anomalies))

	return &CleanupResult{
		DuplicateGroups:   groups,
		DeletedCount:      deleted,
		RemainingBookings: remaining,
		Anomalies:         anomalies,
	}, nil
}

type groupKey struct {
	serviceID int64
	petID     int64
	date      string
}

// planCleanup partitions an owner's bookings into duplicate groups and decides
// which rows to delete. The result is deterministic for a given input set.
func planCleanup(bookings []domain.Booking) (int, []int64, []int64) {
	byKey := make(map[groupKey][]domain.Booking)
	var order []groupKey
	for _, b := range bookings {
		k := groupKey{serviceID: b.ServiceID, petID: b.PetID, date: b.BookingDate}
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], b)
	}

	var groups int
	var deleteIDs, anomalyIDs []int64
	for _, k := range order {
		members := byKey[k]
		if len(members) < 2 {
			continue
		}
		groups++

		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
		survivor, anomalies := chooseSurvivor(members)
		anomalyIDs = append(anomalyIDs, anomalies...)

		protected := make(map[int64]bool, len(anomalies)+1)
		protected[survivor.ID] = true
		for _, id := range anomalies {
			protected[id] = true
		}
		for _, b := range members {
			if !protected[b.ID] {
				deleteIDs = append(deleteIDs, b.ID)
			}
		}
	}
	return groups, deleteIDs, anomalyIDs
}

// chooseSurvivor picks which booking a duplicate group keeps. Paid bookings win
// over confirmed ones, confirmed over everything else, with the lowest id
// breaking ties. Extra paid bookings beyond the survivor are anomalies and stay
// untouched. Members must be sorted by ascending id.
func chooseSurvivor(members []domain.Booking) (survivor domain.Booking, anomalies []int64) {
	var paid []domain.Booking
	for _, b := range members {
		if b.PaymentStatus == domain.PaymentPaid {
			paid = append(paid, b)
		}
	}
	if len(paid) > 0 {
		for _, b := range paid[1:] {
			anomalies = append(anomalies, b.ID)
		}
		return paid[0], anomalies
	}

	for _, b := range members {
		if b.Status == domain.BookingConfirmed {
			return b, nil
		}
	}
	return members[0], nil
}
