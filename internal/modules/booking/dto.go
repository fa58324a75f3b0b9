package booking

type CreateBookingRequest struct {
	ServiceID   int64  `json:"service_id" binding:"required"`
	PetID       int64  `json:"pet_id" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
