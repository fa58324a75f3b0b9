package reconcile

type CompletionRequest struct {
	ExternalReference string `json:"external_reference" binding:"required"`
	BookingID         *int64 `json:"booking_id"`
}

type WebhookEvent struct {
	Type              string `json:"type" binding:"required"`
	ExternalReference string `json:"external_reference" binding:"required"`
	BookingID         *int64 `json:"booking_id"`
}

type ReconcileResult struct {
	BookingID int64 `json:"booking_id"`
	PaymentID int64 `json:"payment_id"`
	Changed   bool  `json:"changed"`
}
