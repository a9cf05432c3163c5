package services

import "mixtrip-api/models"

// Identity is the trusted caller identity handed in by the auth boundary.
// A zero Identity means an unauthenticated request.
type Identity struct {
	UserID string
	Role   string
}

// IsAuthenticated reports whether the identity carries a user id.
func (id Identity) IsAuthenticated() bool {
	return id.UserID != ""
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// IsOwner reports whether userID is the non-null creator of an entity.
func IsOwner(creatorID *string, userID string) bool {
	return creatorID != nil && userID != "" && *creatorID == userID
}

// CanWriteTrip allows the trip creator and admins.
func CanWriteTrip(trip *models.Trip, id Identity) bool {
	if id.IsAdmin() {
		return true
	}
	return id.IsAuthenticated() && trip.CreatorID == id.UserID
}

// CanWriteLocation allows the creator and admins. A creator-less (system
// seeded) location may be edited by any authenticated caller.
func CanWriteLocation(loc *models.Location, id Identity) bool {
	if !id.IsAuthenticated() {
		return false
	}
	if id.IsAdmin() {
		return true
	}
	if loc.CreatorID == nil {
		return true
	}
	return *loc.CreatorID == id.UserID
}

// CanReadTrip evaluates the privacy state machine. The followers and link
// levels currently admit any authenticated viewer; there is no follower
// graph or link-token check.
func CanReadTrip(trip *models.Trip, id Identity) bool {
	switch trip.Privacy {
	case models.PrivacyPublic:
		return true
	case models.PrivacyPrivate:
		return id.IsAuthenticated() && trip.CreatorID == id.UserID
	case models.PrivacyFollowers, models.PrivacyLink:
		return id.IsAuthenticated()
	default:
		return false
	}
}
