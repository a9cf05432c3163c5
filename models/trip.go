package models

import (
	"math"
	"time"
)

// Trip privacy values
const (
	PrivacyPublic    = "public"
	PrivacyPrivate   = "private"
	PrivacyFollowers = "followers"
	PrivacyLink      = "link"
)

// Trip status values
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// DefaultCoverImage is the sentinel cover assigned to new trips.
const DefaultCoverImage = "default-trip-cover.jpg"

// IsValidPrivacy reports whether p is a known privacy level.
func IsValidPrivacy(p string) bool {
	switch p {
	case PrivacyPublic, PrivacyPrivate, PrivacyFollowers, PrivacyLink:
		return true
	}
	return false
}

// IsValidStatus reports whether s is a known trip status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Activity is a single scheduled item within a day plan. The location
// reference is optional and is not required to belong to the owning
// trip's locations list.
type Activity struct {
	LocationID  string `json:"location_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time,omitempty"` // "HH:MM"
	EndTime     string `json:"end_time,omitempty"`   // "HH:MM"
	Notes       string `json:"notes,omitempty"`
	Order       int    `json:"order"`
}

// ItineraryDay is one day plan inside a trip's itinerary
type ItineraryDay struct {
	Day        int        `json:"day"`
	Date       *time.Time `json:"date,omitempty"`
	Activities []Activity `json:"activities"`
}

// BudgetItem is one line item of a trip budget
type BudgetItem struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Notes    string  `json:"notes,omitempty"`
}

// Trip is a user-owned aggregate representing a planned journey. The ordered
// location id list and the itinerary are stored as JSON columns; likes live
// in the trip_likes table with a unique (trip_id, user_id) index.
type Trip struct {
	ID             string        `json:"id" gorm:"primaryKey;size:191"`
	Title          string        `json:"title" gorm:"not null;size:100"`
	Description    string        `json:"description" gorm:"size:1000"`
	CoverImage     string        `json:"cover_image" gorm:"default:'default-trip-cover.jpg';size:255"`
	StartDate      *time.Time    `json:"start_date"`
	EndDate        *time.Time    `json:"end_date"`
	Duration       int           `json:"duration"` // days, derived from dates when both set
	CreatorID      string        `json:"creator_id" gorm:"not null;size:191;index"`
	Locations      StringSlice   `json:"locations" gorm:"type:json"`
	Itinerary      ItineraryDays `json:"itinerary" gorm:"type:json"`
	Privacy        string        `json:"privacy" gorm:"not null;default:'public';size:20"`
	Tags           StringSlice   `json:"tags" gorm:"type:json"`
	Status         string        `json:"status" gorm:"not null;default:'planning';size:20"`
	Views          int           `json:"views" gorm:"default:0"`
	RemixedFrom    *string       `json:"remixed_from" gorm:"size:191"`
	RemixCount     int           `json:"remix_count" gorm:"default:0"`
	ShareableLink  *string       `json:"shareable_link,omitempty" gorm:"uniqueIndex;size:191"`
	BudgetCurrency string        `json:"budget_currency" gorm:"default:'THB';size:10"`
	BudgetItems    BudgetItems   `json:"budget_items" gorm:"type:json"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
}

// TripLike records one user's like of one trip. The unique composite index
// makes the like toggle an atomic add-if-absent / remove-if-present.
type TripLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TripID    string    `json:"trip_id" gorm:"not null;size:191;uniqueIndex:idx_trip_likes_trip_user"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_trip_likes_trip_user"`
	CreatedAt time.Time `json:"created_at"`

	Trip Trip `json:"-" gorm:"foreignKey:TripID"`
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// DurationDays returns the trip length in days, inclusive of both endpoints.
func DurationDays(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours()/24)) + 1
}

// References reports whether the trip references the location, either in its
// locations list or from any itinerary activity.
func (t *Trip) References(locationID string) bool {
	if t.Locations.Contains(locationID) {
		return true
	}
	for _, day := range t.Itinerary {
		for _, act := range day.Activities {
			if act.LocationID == locationID {
				return true
			}
		}
	}
	return false
}

// PruneLocation removes every reference to the location from the trip: the id
// is dropped from the locations list and any activity pointing at it is
// filtered out of its day plan. Remaining activities keep their relative
// order. Returns true when anything changed.
func (t *Trip) PruneLocation(locationID string) bool {
	changed := false

	if t.Locations.Contains(locationID) {
		t.Locations = t.Locations.Without(locationID)
		changed = true
	}

	for i := range t.Itinerary {
		kept := make([]Activity, 0, len(t.Itinerary[i].Activities))
		for _, act := range t.Itinerary[i].Activities {
			if act.LocationID == locationID {
				changed = true
				continue
			}
			kept = append(kept, act)
		}
		t.Itinerary[i].Activities = kept
	}

	return changed
}
