package model

// Availability represents a weekly time slot owned by exactly one user.
//
// Day and time fields are opaque strings; no time-zone or overlap
// validation is performed. The record carries no owner back-reference
// (ownership is unidirectional, tracked on the user side).
type Availability struct {
	ID        string `json:"id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilityData is the transfer representation of an Availability
type AvailabilityData struct {
	AvailabilityID string `json:"availability_id"`
	DayOfWeek      string `json:"day_of_week"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
}

// Data converts the availability to its transfer representation
func (a *Availability) Data() *AvailabilityData {
	return &AvailabilityData{
		AvailabilityID: a.ID,
		DayOfWeek:      a.DayOfWeek,
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
	}
}

// CreateAvailabilityRequest is the payload for creating an availability slot
type CreateAvailabilityRequest struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Entity converts the creation payload to an Availability
func (r *CreateAvailabilityRequest) Entity() *Availability {
	return &Availability{
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// UpdateAvailabilityRequest is the payload for updating an availability
// slot. Updates are a full replace: all mutable fields are overwritten
// unconditionally, not patched.
type UpdateAvailabilityRequest struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
