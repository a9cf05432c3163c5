package models

import (
	"time"
)

// Location source values
const (
	SourceUser   = "user"
	SourceGoogle = "google"
	SourceSystem = "system"
)

// LocationTypes is the fixed enumeration of allowed location categories.
var LocationTypes = map[string]bool{
	"accommodation":  true,
	"restaurant":     true,
	"cafe":           true,
	"bar":            true,
	"attraction":     true,
	"museum":         true,
	"park":           true,
	"beach":          true,
	"shopping":       true,
	"entertainment":  true,
	"temple":         true,
	"landmark":       true,
	"transportation": true,
	"viewpoint":      true,
	"other":          true,
}

// IsValidLocationType reports whether t belongs to the fixed type enumeration.
func IsValidLocationType(t string) bool {
	return LocationTypes[t]
}

// Address holds the optional free-text address parts of a location
type Address struct {
	Street           string `json:"street,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	Country          string `json:"country,omitempty"`
	PostalCode       string `json:"postal_code,omitempty"`
	FormattedAddress string `json:"formatted_address,omitempty"`
}

// Coordinates is a point in floating-point degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ContactInfo holds optional contact details of a location
type ContactInfo struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Location is a point of interest referenceable by many trips. A NULL creator
// means the record was seeded by the system.
type Location struct {
	ID          string      `json:"id" gorm:"primaryKey;size:191"`
	Name        string      `json:"name" gorm:"not null;size:100"`
	Description string      `json:"description" gorm:"size:1000"`
	Address     Address     `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Coordinates Coordinates `json:"coordinates" gorm:"embedded;embeddedPrefix:coord_"`
	PlaceID     string      `json:"place_id,omitempty" gorm:"size:255"`
	Types       StringSlice `json:"types" gorm:"type:json"`
	CreatorID   *string     `json:"creator_id" gorm:"size:191;index"`
	IsVerified  bool        `json:"is_verified" gorm:"default:false"`
	Website     string      `json:"website,omitempty" gorm:"size:500"`
	ContactInfo ContactInfo `json:"contact_info" gorm:"embedded;embeddedPrefix:contact_"`
	Source      string      `json:"source" gorm:"not null;default:'user';size:20"`
	Popularity  int         `json:"popularity" gorm:"default:0"`
	UsageCount  int         `json:"usage_count" gorm:"default:0"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
}
