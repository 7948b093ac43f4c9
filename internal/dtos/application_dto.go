package dtos

import (
	"time"

	"jobtracker/internal/models"
)

// ApplicationRequest is the payload for both POST and PUT: updates
// replace every mutable field wholesale, there is no partial patch.
type ApplicationRequest struct {
	Company string        `json:"company" binding:"required"`
	Title   string        `json:"title" binding:"required"`
	URL     string        `json:"url"`
	Status  models.Status `json:"status" binding:"required,oneof=Saved Applied Interview Offer Rejected"`
	// Date-input format; empty means not applied yet.
	AppliedDate string `json:"applied_date" binding:"omitempty,datetime=2006-01-02"`
	Notes       string `json:"notes"`
}

// AppliedAt returns the parsed applied date, or nil when absent.
// Binding already validated the format.
func (r ApplicationRequest) AppliedAt() *time.Time {
	if r.AppliedDate == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", r.AppliedDate)
	if err != nil {
		return nil
	}
	return &t
}
