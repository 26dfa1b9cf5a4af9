package domain

import (
	"time"

	"github.com/emotefeed/emote-server/internal/color"
)

// User represents a registered account.
type User struct {
	Entity
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"display_name"`
	PasswordHash    string    `json:"-"` // Never serialized
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	LastLoginAt     time.Time `json:"last_login_at"`
}

// UserProfile is the public projection of a user attached to posts.
// Private fields (email, password hash) are deliberately absent.
type UserProfile struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	AvatarColor     string `json:"avatar_color"`
}

// Profile returns the public projection of the user.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:              u.ID,
		Username:        u.Username,
		DisplayName:     u.DisplayName,
		ProfileImageURL: u.ProfileImageURL,
		AvatarColor:     color.ForUser(u.ID),
	}
}
