package models

import "time"

// Document lifecycle statuses. A document is created pending and moves to
// approved or rejected exactly once under normal operation.
const (
	DocumentStatusPending  = "pending"
	DocumentStatusApproved = "approved"
	DocumentStatusRejected = "rejected"
)

// Document represents a single achievement submission awaiting moderation.
// The score is computed from the rule table once at creation time and is
// frozen afterwards; moderation credits the frozen value, never a fresh
// resolution.
type Document struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	StudentID        uint      `gorm:"not null;index" json:"student_id"`
	Category         string    `gorm:"size:64;not null" json:"category"`
	SubType          string    `gorm:"size:64;not null" json:"sub_type"`
	Level            string    `gorm:"size:64;not null;default:none" json:"level"`
	Result           string    `gorm:"size:64;not null;default:other" json:"result"`
	Achievement      string    `gorm:"size:255" json:"achievement"`
	DocType          string    `gorm:"size:64;not null;default:other" json:"doc_type"`
	Score            int       `gorm:"not null;default:0" json:"score"`
	Status           string    `gorm:"size:32;not null;default:pending" json:"status"`
	RejectionReason  string    `gorm:"type:text" json:"rejection_reason"`
	OriginalFileName string    `gorm:"size:255" json:"original_file_name"`
	FileURL          string    `gorm:"size:512" json:"file_url"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Student          Student   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

// IsApproved reports whether the document already credited its student.
func (d Document) IsApproved() bool {
	return d.Status == DocumentStatusApproved
}
