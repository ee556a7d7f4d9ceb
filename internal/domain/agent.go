package domain

import "time"

// MaxAgentsPerUser caps marketplace listings per profile. Enforced
// inside the insert transaction, not as a pre-insert client check.
const MaxAgentsPerUser = 5

type Agent struct {
	ID          int64             `json:"id"`
	OwnerID     int64             `json:"owner_id" gorm:"index"`
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description" gorm:"type:text"`
	Services    []string          `json:"services,omitempty" gorm:"type:json;serializer:json"`
	Price       float64           `json:"price" validate:"gte=0"`
	Currency    string            `json:"currency"`
	Tags        []string          `json:"tags,omitempty" gorm:"type:json;serializer:json"`
	Socials     map[string]string `json:"socials,omitempty" gorm:"type:json;serializer:json"`
	AvatarURL   string            `json:"avatar_url,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	Owner *Profile `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
