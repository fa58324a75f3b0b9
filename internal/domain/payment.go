package domain

import "time"

type ProcessorPaymentStatus string

const (
	PaymentStatusPending   ProcessorPaymentStatus = "pending"
	PaymentStatusCompleted ProcessorPaymentStatus = "completed"
	PaymentStatusFailed    ProcessorPaymentStatus = "failed"
)

// Payment is one processor session. ExternalReference is the processor-assigned
// id correlating the row with completion events; ServiceName is denormalized at
// creation time and is the only link back to the service catalog.
type Payment struct {
	ID                int64                  `json:"id"`
	ExternalReference string                 `json:"external_reference"`
	ServiceName       string                 `json:"service_name"`
	Amount            int64                  `json:"amount"`
	Currency          string                 `json:"currency"`
	Status            ProcessorPaymentStatus `json:"status"`
	CreatedAt         time.Time              `json:"created_at"`
	CompletedAt       *time.Time             `json:"completed_at,omitempty"`
}
