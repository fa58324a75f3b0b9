package cleanup

type CleanupResult struct {
	DuplicateGroups   int     `json:"duplicate_groups"`
	DeletedCount      int     `json:"deleted_count"`
	RemainingBookings int     `json:"remaining_bookings"`
	Anomalies         []int64 `json:"anomalies,omitempty"`
}
