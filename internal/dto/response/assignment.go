package response

type PreReserveResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Count    int               `json:"count"`
}

// AssignmentResult captures one item of a bulk assignment. Bulk assignment
// is best-effort: failures become entries here, they never abort the batch.
type AssignmentResult struct {
	BookingID string           `json:"booking_id"`
	Success   bool             `json:"success"`
	Error     string           `json:"error,omitempty"`
	Booking   *BookingResponse `json:"booking,omitempty"`
}

type BulkAssignmentResponse struct {
	Results      []AssignmentResult `json:"results"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	Success      bool               `json:"success"`
}
