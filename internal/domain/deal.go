package domain

import "time"

type DealStatus string

const (
	DealPending     DealStatus = "pending"
	DealNegotiating DealStatus = "negotiating"
	DealApproved    DealStatus = "approved"
	DealRejected    DealStatus = "rejected"
	DealCancelled   DealStatus = "cancelled"
)

// Terminal reports whether no further transition is defined out of s.
func (s DealStatus) Terminal() bool {
	return s == DealApproved || s == DealRejected || s == DealCancelled
}

type DealType string

const (
	DealHireAgent   DealType = "hire_agent"
	DealTransaction DealType = "transaction"
	DealOther       DealType = "other"
)

func ValidDealType(t DealType) bool {
	return t == DealHireAgent || t == DealTransaction || t == DealOther
}

type Deal struct {
	ID              int64      `json:"id"`
	InitiatorID     int64      `json:"initiator_id" gorm:"index"`
	RecipientID     int64      `json:"recipient_id" gorm:"index"`
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description" gorm:"type:text" validate:"required"`
	DealType        DealType   `json:"deal_type"`
	InitiatorImages []string   `json:"initiator_images,omitempty" gorm:"type:json;serializer:json"`
	Status          DealStatus `json:"status" gorm:"index"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Initiator *Profile `json:"initiator,omitempty" gorm:"foreignKey:InitiatorID"`
	Recipient *Profile `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
}

type DealResponseType string

const (
	ResponseRecipient     DealResponseType = "recipient_response"
	ResponseAdminApproval DealResponseType = "admin_approval"
)

// DealResponse is an append-only log entry; rows are never updated or
// deleted once written.
type DealResponse struct {
	ID           int64            `json:"id"`
	DealID       int64            `json:"deal_id" gorm:"index"`
	UserID       int64            `json:"user_id"`
	Content      string           `json:"content" gorm:"type:text"`
	Images       []string         `json:"images,omitempty" gorm:"type:json;serializer:json"`
	ResponseType DealResponseType `json:"response_type"`
	IsApproved   *bool            `json:"is_approved"`
	CreatedAt    time.Time        `json:"created_at"`

	User *Profile `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type DealReview struct {
	ID         int64     `json:"id"`
	DealID     int64     `json:"deal_id" gorm:"uniqueIndex:idx_one_review_per_party"`
	ReviewerID int64     `json:"reviewer_id" gorm:"uniqueIndex:idx_one_review_per_party"`
	RevieweeID int64     `json:"reviewee_id" gorm:"index"`
	Rating     int       `json:"rating" validate:"required,gte=1,lte=5"`
	ReviewText string    `json:"review_text" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`

	Reviewer *Profile `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	Reviewee *Profile `json:"reviewee,omitempty" gorm:"foreignKey:RevieweeID"`
}

type AssessmentStatus string

const (
	AssessmentPending  AssessmentStatus = "pending"
	AssessmentApproved AssessmentStatus = "approved"
	AssessmentRejected AssessmentStatus = "rejected"
)

// ReviewAssessment is a reviewee-initiated dispute of a low-rated review.
type ReviewAssessment struct {
	ID         int64            `json:"id"`
	ReviewID   int64            `json:"review_id" gorm:"uniqueIndex"`
	UserID     int64            `json:"user_id"`
	Reason     string           `json:"reason,omitempty" gorm:"type:text"`
	Status     AssessmentStatus `json:"status" gorm:"index"`
	AdminNotes string           `json:"admin_notes,omitempty" gorm:"type:text"`
	ResolvedBy *int64           `json:"resolved_by,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	User *Profile `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
