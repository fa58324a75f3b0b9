package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"petcarehub/internal/domain"
)

const defaultStoreTimeout = 5 * time.Second

type Service struct {
	payments paymentRepo
	bookings bookingRepo
	services serviceReader
	notifs   NotificationSender
	timeout  time.Duration
	loggerf  func(format string, args ...interface{})
}

func NewService(payments paymentRepo, bookings bookingRepo, services serviceReader, notifs NotificationSender, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(format string, args ...interface{}) {}
	}
	return &Service{
		payments: payments,
		bookings: bookings,
		services: services,
		notifs:   notifs,
		timeout:  storeTimeoutFromEnv(),
		loggerf:  loggerf,
	}
}

func storeTimeoutFromEnv() time.Duration {
	raw := os.Getenv("RECONCILE_STORE_TIMEOUT_MS")
	if raw == "" {
		return defaultStoreTimeout
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return defaultStoreTimeout
	}
	return time.Duration(ms) * time.Millisecond
}

// ReconcileCompletion records a successful processor payment and marks the
// matching booking as paid in a single transaction. When BookingID is set the
// match is explicit; otherwise the booking is inferred from the payment's
// service name and amount. Replays on an already completed payment return the
// prior result with Changed=false.
func (s *Service) ReconcileCompletion(ctx context.Context, req CompletionRequest) (*ReconcileResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	p, err := s.loadPayment(ctx, req.ExternalReference)
	if err != nil {
		return nil, err
	}

	switch p.Status {
	case domain.PaymentStatusCompleted:
		return s.replayResult(ctx, p, req)
	case domain.PaymentStatusFailed:
		s.loggerf("level=info msg=\"completion ignored for failed payment\" reference=%s", p.ExternalReference)
		return &ReconcileResult{PaymentID: p.ID, Changed: false}, nil
	}

	booking, err := s.matchBooking(ctx, p, req.BookingID)
	if err != nil {
		return nil, err
	}

	changed, err := s.payments.CompleteAndMarkPaid(ctx, p.ExternalReference, booking.ID, time.Now().UTC())
	if err != nil {
		return nil, s.storeErr("complete payment", err)
	}
	if changed {
		s.loggerf("level=info msg=\"payment reconciled\" reference=%s booking_id=%d", p.ExternalReference, booking.ID)
		if s.notifs != nil {
			_ = s.notifs.NotifyBookingPaid(ctx, booking.PetOwnerID, booking.ID, p.ID)
		}
	}
	return &ReconcileResult{BookingID: booking.ID, PaymentID: p.ID, Changed: changed}, nil
}

// MarkFailed moves a pending payment to failed. Terminal payments are left
// untouched and reported with Changed=false.
func (s *Service) MarkFailed(ctx context.Context, ref string) (*ReconcileResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	p, err := s.loadPayment(ctx, ref)
	if err != nil {
		return nil, err
	}
	changed, err := s.payments.MarkFailed(ctx, ref)
	if err != nil {
		return nil, s.storeErr("mark failed", err)
	}
	if changed {
		s.loggerf("level=info msg=\"payment marked failed\" reference=%s", ref)
	}
	return &ReconcileResult{PaymentID: p.ID, Changed: changed}, nil
}

// HandleWebhook dispatches a processor event to the matching reconciliation
// operation. Unknown event types are acknowledged without effect so the
// processor does not retry them.
func (s *Service) HandleWebhook(ctx context.Context, ev WebhookEvent) (*ReconcileResult, error) {
	switch ev.Type {
	case "payment_intent.succeeded":
		return s.ReconcileCompletion(ctx, CompletionRequest{ExternalReference: ev.ExternalReference, BookingID: ev.BookingID})
	case "payment_intent.payment_failed":
		return s.MarkFailed(ctx, ev.ExternalReference)
	default:
		s.loggerf("level=info msg=\"webhook event ignored\" type=%s", ev.Type)
		return &ReconcileResult{Changed: false}, nil
	}
}

func (s *Service) loadPayment(ctx context.Context, ref string) (*domain.Payment, error) {
	p, err := s.payments.GetByExternalReference(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, s.storeErr("load payment", err)
	}
	return p, nil
}

func (s *Service) replayResult(ctx context.Context, p *domain.Payment, req CompletionRequest) (*ReconcileResult, error) {
	res := &ReconcileResult{PaymentID: p.ID, Changed: false}
	if req.BookingID != nil {
		res.BookingID = *req.BookingID
		return res, nil
	}
	b, err := s.bookings.GetByExternalReference(ctx, p.ExternalReference)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.storeErr("load booking", err)
	}
	if b != nil {
		res.BookingID = b.ID
	}
	return res, nil
}

func (s *Service) matchBooking(ctx context.Context, p *domain.Payment, bookingID *int64) (*domain.Booking, error) {
	if bookingID != nil {
		b, err := s.bookings.GetByID(ctx, *bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, s.storeErr("load booking", err)
		}
		return b, nil
	}

	svc, err := s.services.GetByName(ctx, p.ServiceName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoMatchingBooking
		}
		return nil, s.storeErr("load service", err)
	}

	if !amountMatches(svc.Price, p.Amount) {
		return nil, ErrNoMatchingBooking
	}

	candidates, err := s.bookings.FindPayableByService(ctx, svc.ID)
	if err != nil {
		return nil, s.storeErr("list payable bookings", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoMatchingBooking
	}
	chosen := selectCandidate(candidates)
	return &chosen, nil
}

// selectCandidate picks the most recently created booking, by highest id.
func selectCandidate(bookings []domain.Booking) domain.Booking {
	chosen := bookings[0]
	for _, b := range bookings[1:] {
		if b.ID > chosen.ID {
			chosen = b
		}
	}
	return chosen
}

// amountMatches compares a service price in major units against a payment
// amount in minor units.
func amountMatches(price float64, amount int64) bool {
	return int64(math.Round(price*100)) == amount
}

func (s *Service) storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		s.loggerf("level=error msg=\"store timeout\" op=%q", op)
		return ErrTimeout
	}
	return fmt.Errorf("%w: %s: %v", ErrReconciliation, op, err)
}
