package payment

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"petcarehub/internal/domain"
	"petcarehub/internal/pkg/processor"

	"github.com/jackc/pgx/v5/pgconn"
)

type Service struct {
	payments  paymentRepo
	services  serviceReader
	processor processor.Client
	loggerf   func(format string, args ...interface{})

	defaultCurrency string
}

func NewService(payments paymentRepo, services serviceReader, proc processor.Client, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	currency := strings.TrimSpace(os.Getenv("PAYMENT_DEFAULT_CURRENCY"))
	if currency == "" {
		currency = "usd"
	}
	return &Service{
		payments:        payments,
		services:        services,
		processor:       proc,
		loggerf:         loggerf,
		defaultCurrency: currency,
	}
}

// IssueIntent validates the request, registers the processor intent, and
// records exactly one pending Payment row. The issuer never reuses an existing
// pending row; not re-issuing for the same logical request is the caller's
// obligation.
func (s *Service) IssueIntent(ctx context.Context, req IssueIntentRequest) (*IssueIntentResponse, error) {
	if strings.TrimSpace(req.ServiceName) == "" {
		return nil, fmt.Errorf("%w: service name is required", ErrValidation)
	}
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	}

	minorUnits := int64(math.Round(req.Amount * 100))
	if minorUnits <= 0 {
		return nil, fmt.Errorf("%w: amount rounds to zero minor units", ErrValidation)
	}

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = s.defaultCurrency
	}

	if req.ServiceID != 0 {
		if _, err := s.services.GetByID(ctx, req.ServiceID); err != nil {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
		}
	}

	metadata := map[string]string{
		"service_name": req.ServiceName,
	}
	if req.ServiceID != 0 {
		metadata["service_id"] = fmt.Sprintf("%d", req.ServiceID)
	}
	if req.UserID != 0 {
		metadata["user_id"] = fmt.Sprintf("%d", req.UserID)
	}
	if req.BookingID != 0 {
		metadata["booking_id"] = fmt.Sprintf("%d", req.BookingID)
	}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	intent, err := s.processor.CreateIntent(ctx, minorUnits, currency, "Pet care service: "+req.ServiceName, metadata)
	if err != nil {
		return nil, fmt.Errorf("create intent failed: %w", err)
	}

	p := &domain.Payment{
		ExternalReference: intent.ID,
		ServiceName:       req.ServiceName,
		Amount:            minorUnits,
		Currency:          currency,
		Status:            domain.PaymentStatusPending,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.payments.Create(ctx, req.UserID, req.ServiceID, p); err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return nil, ErrDuplicateReference
		}
		return nil, fmt.Errorf("save payment failed: %w", err)
	}

	s.loggerf("level=info msg=payment intent issued external_reference=%s amount=%d currency=%s", intent.ID, minorUnits, currency)

	return &IssueIntentResponse{
		IntentID:         intent.ID,
		ClientSecret:     intent.ClientSecret,
		AmountMinorUnits: minorUnits,
		Currency:         currency,
	}, nil
}

func (s *Service) GetStatus(ctx context.Context, externalRef string) (*domain.Payment, error) {
	return s.payments.GetByExternalReference(ctx, externalRef)
}

func (s *Service) GetHistory(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return s.payments.GetByUserID(ctx, userID)
}
