package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"petcarehub/internal/domain"
)

type fakePaymentRepo struct {
	payments map[string]*domain.Payment

	completedRef       string
	completedBookingID int64
	failedRef          string
}

func newFakePaymentRepo(payments ...*domain.Payment) *fakePaymentRepo {
	m := make(map[string]*domain.Payment, len(payments))
	for _, p := range payments {
		m[p.ExternalReference] = p
	}
	return &fakePaymentRepo{payments: m}
}

func (f *fakePaymentRepo) GetByExternalReference(_ context.Context, ref string) (*domain.Payment, error) {
	p, ok := f.payments[ref]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentRepo) CompleteAndMarkPaid(_ context.Context, ref string, bookingID int64, completedAt time.Time) (bool, error) {
	p, ok := f.payments[ref]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if p.Status != domain.PaymentStatusPending {
		return false, nil
	}
	p.Status = domain.PaymentStatusCompleted
	p.CompletedAt = &completedAt
	f.completedRef = ref
	f.completedBookingID = bookingID
	return true, nil
}

func (f *fakePaymentRepo) MarkFailed(_ context.Context, ref string) (bool, error) {
	p, ok := f.payments[ref]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if p.Status != domain.PaymentStatusPending {
		return false, nil
	}
	p.Status = domain.PaymentStatusFailed
	f.failedRef = ref
	return true, nil
}

type fakeBookingRepo struct {
	byID    map[int64]*domain.Booking
	byRef   map[string]*domain.Booking
	payable map[int64][]domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		byID:    make(map[int64]*domain.Booking),
		byRef:   make(map[string]*domain.Booking),
		payable: make(map[int64][]domain.Booking),
	}
	for _, b := range bookings {
		f.byID[b.ID] = b
		if b.ExternalReference != "" {
			f.byRef[b.ExternalReference] = b
		}
		if b.Status == domain.BookingConfirmed && b.PaymentStatus == domain.PaymentUnpaid {
			f.payable[b.ServiceID] = append(f.payable[b.ServiceID], *b)
		}
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByExternalReference(_ context.Context, ref string) (*domain.Booking, error) {
	b, ok := f.byRef[ref]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) FindPayableByService(_ context.Context, serviceID int64) ([]domain.Booking, error) {
	return f.payable[serviceID], nil
}

type fakeServiceReader struct {
	services map[string]*domain.Service
}

func (f *fakeServiceReader) GetByName(_ context.Context, name string) (*domain.Service, error) {
	s, ok := f.services[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

type recordingNotifier struct {
	ownerID   int64
	bookingID int64
	paymentID int64
	calls     int
}

func (r *recordingNotifier) NotifyBookingPaid(_ context.Context, ownerID, bookingID, paymentID int64) error {
	r.ownerID = ownerID
	r.bookingID = bookingID
	r.paymentID = paymentID
	r.calls++
	return nil
}

func pendingPayment(ref, serviceName string, amount int64) *domain.Payment {
	return &domain.Payment{
		ID:                1,
		ExternalReference: ref,
		ServiceName:       serviceName,
		Amount:            amount,
		Currency:          "usd",
		Status:            domain.PaymentStatusPending,
		CreatedAt:         time.Now(),
	}
}

func confirmedBooking(id, ownerID, serviceID int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		PetOwnerID:    ownerID,
		ServiceID:     serviceID,
		PetID:         1,
		BookingDate:   "2024-03-21",
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentUnpaid,
	}
}

func TestReconcileCompletion_ExplicitBooking(t *testing.T) {
	payments := newFakePaymentRepo(pendingPayment("pi_1", "Dog Grooming", 5000))
	booking := confirmedBooking(7, 2, 3)
	bookings := newFakeBookingRepo(booking)
	notifs := &recordingNotifier{}

	svc := NewService(payments, bookings, &fakeServiceReader{}, notifs, nil)

	id := int64(7)
	res, err := svc.ReconcileCompletion(context.Background(), CompletionRequest{ExternalReference: "pi_1", BookingID: &id})
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, int64(7), res.BookingID)
	assert.Equal(t, "pi_1", payments.completedRef)
	assert.Equal(t, int64(7), payments.completedBookingID)
	assert.Equal(t, 1, notifs.calls)
	assert.Equal(t, int64(2), notifs.ownerID)
}

func TestReconcileCompletion_ReplayIsNoOp(t *testing.T) {
	payments := newFakePaymentRepo(pendingPayment("pi_1", "Dog Grooming", 5000))
	booking := confirmedBooking(7, 2, 3)
	bookings := newFakeBookingRepo(booking)
	notifs := &recordingNotifier{}

	svc := NewService(payments, bookings, &fakeServiceReader{}, notifs, nil)

	id := int64(7)
	req := CompletionRequest{ExternalReference: "pi_1", BookingID: &id}

	first, err := svc.ReconcileCompletion(context.Background(), req)
	require.NoError(t, err)
	require.True(t, first.Changed)

	second, err := svc.ReconcileCompletion(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, second.Changed)
	assert.Equal(t, int64(7), second.BookingID)
	assert.Equal(t, 1, notifs.calls, "replay must not notify again")
}

func TestReconcileCompletion_FailedPaymentIgnored(t *testing.T) {
	p := pendingPayment("pi_1", "Dog Grooming", 5000)
	p.Status = domain.PaymentStatusFailed
	payments := newFakePaymentRepo(p)

	svc := NewService(payments, newFakeBookingRepo(), &fakeServiceReader{}, nil, nil)

	res, err := svc.ReconcileCompletion(context.Background(), CompletionRequest{ExternalReference: "pi_1"})
	require.NoError(t, err)

	assert.False(t, res.Changed)
	assert.Empty(t, payments.completedRef)
}

func TestReconcileCompletion_UnknownPayment(t *testing.T) {
	svc := NewService(newFakePaymentRepo(), newFakeBookingRepo(), &fakeServiceReader{}, nil, nil)

	_, err := svc.ReconcileCompletion(context.Background(), CompletionRequest{ExternalReference: "pi_missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReconcileCompletion_ExplicitBookingMissing(t *testing.T) {
	payments := newFakePaymentRepo(pendingPayment("pi_1", "Dog Grooming", 5000))
	svc := NewService(payments, newFakeBookingRepo(), &fakeServiceReader{}, nil, nil)

	id := int64(99)
	_, err := svc.ReconcileCompletion(context.Background(), CompletionRequest{ExternalReference: "pi_1", BookingID: &id})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReconcileCompletion_InferredPicksNewestBooking(t *testing.T) {
	payments := newFakePaymentRepo(pendingPayment("pi_1", "Dog Grooming", 5000))
	older := confirmedBooking(4, 2, 3)
	newer := confirmedBooking(9, 2, 3)
	bookings := newFakeBookingRepo(older, newer)
	services := &fakeServiceReader{services: map[string]*domain.Service{
		"Dog Grooming": {ID: 3, Name: "Dog Grooming", Price: 50.00},
	}}

	svc := NewService(payments, bookings, services, nil, nil)

	res, err := svc.ReconcileCompletion(context.Background(), CompletionRequest{ExternalReference: "pi_1"})
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, int64(9), res.BookingID)
	assert.Equal(t, int64(9), payments.completedBookingID)
}

func TestReconcileCompletion_InferredAmountMismatch(t *testing.T) {
	payments := newFakePaymentRepo(pendingPayment("pi_1", "Dog Grooming", 8000))
	bookings := newFakeBookingRepo(confirmedBooking(4, 2, 3))
	services := &fakeServiceReader{services: map[string]*domain.Service{
		"Dog Grooming": {ID: 3, Name: "Dog Grooming", Price: 79.99},
	}}

	svc := NewService(payments, bookings, services, nil, nil)

	_, err := svc.ReconcileCompletion(context.Background(), CompletionRequest{ExternalReference: "pi_1"})
	assert.ErrorIs(t, err, ErrNoMatchingBooking)
}

func TestReconcileCompletion_InferredUnknownService(t *testing.T) {
	payments := newFakePaymentRepo(pendingPayment("pi_1", "Gone Service", 5000))
	svc := NewService(payments, newFakeBookingRepo(), &fakeServiceReader{}, nil, nil)

	_, err := svc.ReconcileCompletion(context.Background(), CompletionRequest{ExternalReference: "pi_1"})
	assert.ErrorIs(t, err, ErrNoMatchingBooking)
}

func TestReconcileCompletion_InferredNoPayableBookings(t *testing.T) {
	payments := newFakePaymentRepo(pendingPayment("pi_1", "Dog Grooming", 5000))
	paid := confirmedBooking(4, 2, 3)
	paid.PaymentStatus = domain.PaymentPaid
	bookings := newFakeBookingRepo(paid)
	services := &fakeServiceReader{services: map[string]*domain.Service{
		"Dog Grooming": {ID: 3, Name: "Dog Grooming", Price: 50.00},
	}}

	svc := NewService(payments, bookings, services, nil, nil)

	_, err := svc.ReconcileCompletion(context.Background(), CompletionRequest{ExternalReference: "pi_1"})
	assert.ErrorIs(t, err, ErrNoMatchingBooking)
}

func TestMarkFailed(t *testing.T) {
	payments := newFakePaymentRepo(pendingPayment("pi_1", "Dog Grooming", 5000))
	svc := NewService(payments, newFakeBookingRepo(), &fakeServiceReader{}, nil, nil)

	res, err := svc.MarkFailed(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "pi_1", payments.failedRef)

	res, err = svc.MarkFailed(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestMarkFailed_UnknownPayment(t *testing.T) {
	svc := NewService(newFakePaymentRepo(), newFakeBookingRepo(), &fakeServiceReader{}, nil, nil)

	_, err := svc.MarkFailed(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHandleWebhook(t *testing.T) {
	payments := newFakePaymentRepo(pendingPayment("pi_1", "Dog Grooming", 5000))
	booking := confirmedBooking(7, 2, 3)
	svc := NewService(payments, newFakeBookingRepo(booking), &fakeServiceReader{}, nil, nil)

	id := int64(7)
	res, err := svc.HandleWebhook(context.Background(), WebhookEvent{
		Type:              "payment_intent.succeeded",
		ExternalReference: "pi_1",
		BookingID:         &id,
	})
	require.NoError(t, err)
	assert.True(t, res.Changed)

	res, err = svc.HandleWebhook(context.Background(), WebhookEvent{Type: "charge.refunded", ExternalReference: "pi_1"})
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestSelectCandidate(t *testing.T) {
	got := selectCandidate([]domain.Booking{{ID: 3}, {ID: 11}, {ID: 5}})
	assert.Equal(t, int64(11), got.ID)
}

func TestAmountMatches(t *testing.T) {
	assert.True(t, amountMatches(50.00, 5000))
	assert.True(t, amountMatches(79.99, 7999))
	assert.False(t, amountMatches(79.99, 8000))
}
