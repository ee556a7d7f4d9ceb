package domain

import (
	"encoding/json"
	"time"
)

type NotificationType string

const (
	NotifDealProposed       NotificationType = "deal_proposed"
	NotifDealResponded      NotificationType = "deal_responded"
	NotifDealArbitrated     NotificationType = "deal_arbitrated"
	NotifDealCancelled      NotificationType = "deal_cancelled"
	NotifNewReview          NotificationType = "new_review"
	NotifAssessmentResolved NotificationType = "assessment_resolved"
	NotifRequestResolved    NotificationType = "request_resolved"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id" gorm:"index"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body,omitempty" gorm:"type:text"`
	Data      json.RawMessage  `json:"data,omitempty" gorm:"type:json"`
	IsRead    bool             `json:"is_read" gorm:"index"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
