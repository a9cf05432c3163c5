package models

import (
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                   string     `json:"id" gorm:"primaryKey;size:191"`
	Name                 string     `json:"name" gorm:"not null;size:255"`
	Username             string     `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email                string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password             string     `json:"-" gorm:"not null;size:255"`
	Role                 string     `json:"role" gorm:"not null;default:'user';size:20"`
	Bio                  string     `json:"bio" gorm:"size:500"`
	ProfileImage         string     `json:"profile_image" gorm:"default:'default-profile.jpg';size:255"`
	ResetPasswordToken   *string    `json:"-" gorm:"size:64;index"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// GenerateUsernameFromName creates a username candidate from the user's name
func GenerateUsernameFromName(name string) string {
	// Convert to lowercase and replace spaces with underscores
	username := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	// Remove special characters
	username = strings.ReplaceAll(username, ".", "")
	username = strings.ReplaceAll(username, "-", "_")
	return username
}
