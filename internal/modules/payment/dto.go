package payment

type IssueIntentRequest struct {
	Amount      float64           `json:"amount" binding:"required"`
	Currency    string            `json:"currency"`
	ServiceName string            `json:"service_name" binding:"required"`
	ServiceID   int64             `json:"service_id"`
	UserID      int64             `json:"user_id"`
	BookingID   int64             `json:"booking_id"`
	Metadata    map[string]string `json:"metadata"`
}

type IssueIntentResponse struct {
	IntentID         string `json:"intent_id"`
	ClientSecret     string `json:"client_secret"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Currency         string `json:"currency"`
}

type PaymentStatusResponse struct {
	ID                int64  `json:"id"`
	ExternalReference string `json:"external_reference"`
	ServiceName       string `json:"service_name"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
	Status            string `json:"status"`
	CreatedAt         string `json:"created_at"`
	CompletedAt       string `json:"completed_at,omitempty"`
}
