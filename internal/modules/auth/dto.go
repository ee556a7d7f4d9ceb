package auth

import "tradeboard/internal/domain"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Bio       string `json:"bio" validate:"omitempty,max=1000"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

type LoginResult struct {
	User        *domain.Profile
	AccessToken string
}

// ProfileResponse augments the stored profile with its derived level.
type ProfileResponse struct {
	*domain.Profile
	Level domain.Level `json:"level"`
}

func NewProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{Profile: p, Level: domain.LevelFor(p.PostCount)}
}
