package domain

import "time"

type UserRole string

const (
	RoleUser     UserRole = "user"
	RoleVerified UserRole = "verified"
	RoleAdmin    UserRole = "admin"
	RoleOwner    UserRole = "owner"
)

type Profile struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username" gorm:"uniqueIndex" validate:"required"`
	Email          string     `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash   string     `json:"-"`
	AvatarURL      string     `json:"avatar_url,omitempty"`
	Bio            string     `json:"bio,omitempty" gorm:"type:text"`
	PostCount      int        `json:"post_count"`
	Reputation     int        `json:"reputation"`
	IsVerified     bool       `json:"is_verified"`
	IsAdmin        bool       `json:"is_admin"`
	IsOwner        bool       `json:"is_owner"`
	IsBanned       bool       `json:"is_banned"`
	HonorableTitle string     `json:"honorable_title,omitempty"`
	BanReason      string     `json:"-"`
	BannedAt       *time.Time `json:"-"`

	FailedLoginAttempts int        `json:"-"`
	LockedUntil         *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// Role collapses the moderation flags into the single highest role.
// Used for JWT claims; services re-check the flags on privileged paths.
func (p *Profile) Role() UserRole {
	switch {
	case p.IsOwner:
		return RoleOwner
	case p.IsAdmin:
		return RoleAdmin
	case p.IsVerified:
		return RoleVerified
	default:
		return RoleUser
	}
}

// CanModerate reports whether p may apply moderation actions to target.
// Admins manage regular users only; owners manage everyone except owners.
func (p *Profile) CanModerate(target *Profile) bool {
	if target.IsOwner {
		return false
	}
	if p.IsOwner {
		return true
	}
	if p.IsAdmin {
		return !target.IsAdmin
	}
	return false
}
