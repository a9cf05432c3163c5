package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mixtrip-api/models"
)

func TestCanReadTrip_PrivacyMatrix(t *testing.T) {
	creator := Identity{UserID: "u-creator", Role: models.RoleUser}
	other := Identity{UserID: "u-other", Role: models.RoleUser}
	anon := Identity{}

	tests := []struct {
		privacy string
		creator bool
		other   bool
		anon    bool
	}{
		{models.PrivacyPublic, true, true, true},
		{models.PrivacyPrivate, true, false, false},
		{models.PrivacyFollowers, true, true, false},
		{models.PrivacyLink, true, true, false},
	}

	for _, tt := range tests {
		trip := &models.Trip{CreatorID: "u-creator", Privacy: tt.privacy}
		assert.Equal(t, tt.creator, CanReadTrip(trip, creator), "%s/creator", tt.privacy)
		assert.Equal(t, tt.other, CanReadTrip(trip, other), "%s/other", tt.privacy)
		assert.Equal(t, tt.anon, CanReadTrip(trip, anon), "%s/anon", tt.privacy)
	}
}

func TestCanReadTrip_UnknownPrivacyDeniesEveryone(t *testing.T) {
	trip := &models.Trip{CreatorID: "u-creator", Privacy: "mystery"}
	assert.False(t, CanReadTrip(trip, Identity{UserID: "u-creator"}))
	assert.False(t, CanReadTrip(trip, Identity{}))
}

func TestCanWriteTrip(t *testing.T) {
	trip := &models.Trip{CreatorID: "u-creator"}

	assert.True(t, CanWriteTrip(trip, Identity{UserID: "u-creator"}))
	assert.True(t, CanWriteTrip(trip, Identity{UserID: "u-admin", Role: models.RoleAdmin}))
	assert.False(t, CanWriteTrip(trip, Identity{UserID: "u-other"}))
	assert.False(t, CanWriteTrip(trip, Identity{}))
}

func TestCanWriteLocation(t *testing.T) {
	creatorID := "u-creator"
	owned := &models.Location{CreatorID: &creatorID}
	system := &models.Location{CreatorID: nil, Source: models.SourceSystem}

	assert.True(t, CanWriteLocation(owned, Identity{UserID: "u-creator"}))
	assert.True(t, CanWriteLocation(owned, Identity{UserID: "u-admin", Role: models.RoleAdmin}))
	assert.False(t, CanWriteLocation(owned, Identity{UserID: "u-other"}))

	// System-seeded locations are community property
	assert.True(t, CanWriteLocation(system, Identity{UserID: "u-anyone"}))
	assert.False(t, CanWriteLocation(system, Identity{}))
}

func TestIsOwner(t *testing.T) {
	id := "u-1"
	assert.True(t, IsOwner(&id, "u-1"))
	assert.False(t, IsOwner(&id, "u-2"))
	assert.False(t, IsOwner(nil, "u-1"))
	assert.False(t, IsOwner(&id, ""))
}
