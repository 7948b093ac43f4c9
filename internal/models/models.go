package models

import (
	"time"
)

// Status is the lifecycle stage of a job application.
type Status string

const (
	StatusSaved     Status = "Saved"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []Status{StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email string `gorm:"uniqueIndex;not null" json:"email"`
	// Never serialized.
	PasswordHash string `gorm:"not null" json:"-"`
}

// Application is one job-application record owned by a user.
type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owner. Every read and mutation is scoped to it.
	UserID uint `gorm:"index;not null" json:"user_id"`

	Company string `gorm:"not null" json:"company"`
	Title   string `gorm:"not null" json:"title"`
	URL     string `json:"url"`
	Status  Status `gorm:"not null;default:'Applied'" json:"status"`
	// Nullable: a saved posting has no applied date yet.
	AppliedDate *time.Time `gorm:"type:date" json:"applied_date"`
	Notes       string     `gorm:"type:text" json:"notes"`
}
