package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Booking struct {
	ID                int64         `json:"id"`
	PetOwnerID        int64         `json:"pet_owner_id" validate:"required"`
	ServiceID         int64         `json:"service_id" validate:"required"`
	PetID             int64         `json:"pet_id" validate:"required"`
	ProviderID        int64         `json:"provider_id"`
	BookingDate       string        `json:"booking_date" validate:"required"`
	Status            BookingStatus `json:"status"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	ExternalReference string        `json:"external_reference,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
