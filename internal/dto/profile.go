package dto

import (
	"time"

	"github.com/bitbites/canteen/internal/entity"
)

// ProfileResponse represents a user profile as exposed via transport layers.
type ProfileResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfileResponse maps a profile entity onto its transport shape.
func NewProfileResponse(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:    profile.UserID,
		Email:     profile.Email,
		Name:      profile.Name,
		Role:      profile.Role,
		Phone:     profile.Phone,
		Location:  profile.Location,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}
