package domain

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// VerificationRequest is an approval-queue record; approving it sets
// profile.is_verified in the same transaction.
type VerificationRequest struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"user_id" gorm:"index"`
	Content    string        `json:"content" gorm:"type:text" validate:"required"`
	Images     []string      `json:"images,omitempty" gorm:"type:json;serializer:json"`
	Status     RequestStatus `json:"status" gorm:"index"`
	AdminNotes string        `json:"admin_notes,omitempty" gorm:"type:text"`
	ReviewedBy *int64        `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	User *Profile `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// AdminRequest mirrors VerificationRequest but grants is_admin and may
// only be approved by the owner.
type AdminRequest struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"user_id" gorm:"index"`
	Content    string        `json:"content" gorm:"type:text" validate:"required"`
	Status     RequestStatus `json:"status" gorm:"index"`
	AdminNotes string        `json:"admin_notes,omitempty" gorm:"type:text"`
	ReviewedBy *int64        `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	User *Profile `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
