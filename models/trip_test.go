package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDurationDays_Inclusive(t *testing.T) {
	// 1st through 3rd is three days of travel
	assert.Equal(t, 3, DurationDays(date(2025, 5, 1), date(2025, 5, 3)))
}

func TestDurationDays_SameDay(t *testing.T) {
	assert.Equal(t, 1, DurationDays(date(2025, 5, 1), date(2025, 5, 1)))
}

func TestDurationDays_ReversedDates(t *testing.T) {
	// Order of arguments must not matter
	assert.Equal(t, 3, DurationDays(date(2025, 5, 3), date(2025, 5, 1)))
}

func TestDurationDays_PartialDayRoundsUp(t *testing.T) {
	start := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 2, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, DurationDays(start, end))
}

func TestTrip_References(t *testing.T) {
	trip := &Trip{
		Locations: StringSlice{"loc-a", "loc-b"},
		Itinerary: ItineraryDays{
			{Day: 1, Activities: []Activity{
				{Title: "Breakfast", LocationID: "loc-c"},
			}},
		},
	}

	assert.True(t, trip.References("loc-a"), "listed location")
	assert.True(t, trip.References("loc-c"), "itinerary-only location")
	assert.False(t, trip.References("loc-x"))
}

func TestTrip_PruneLocation(t *testing.T) {
	trip := &Trip{
		Locations: StringSlice{"loc-a", "loc-b", "loc-c"},
		Itinerary: ItineraryDays{
			{Day: 1, Activities: []Activity{
				{Title: "Morning market", LocationID: "loc-a", Order: 0},
				{Title: "Temple visit", LocationID: "loc-b", Order: 1},
				{Title: "Street food", LocationID: "loc-a", Order: 2},
				{Title: "Night bazaar", Order: 3},
			}},
			{Day: 2, Activities: []Activity{
				{Title: "Boat tour", LocationID: "loc-b", Order: 0},
			}},
		},
	}

	changed := trip.PruneLocation("loc-a")
	require.True(t, changed)

	assert.Equal(t, StringSlice{"loc-b", "loc-c"}, trip.Locations)

	// Day 1 keeps the survivors in their original relative order
	day1 := trip.Itinerary[0].Activities
	require.Len(t, day1, 2)
	assert.Equal(t, "Temple visit", day1[0].Title)
	assert.Equal(t, "Night bazaar", day1[1].Title)

	// Day 2 untouched
	require.Len(t, trip.Itinerary[1].Activities, 1)
	assert.Equal(t, "Boat tour", trip.Itinerary[1].Activities[0].Title)
}

func TestTrip_PruneLocation_NoReference(t *testing.T) {
	trip := &Trip{Locations: StringSlice{"loc-a"}}
	assert.False(t, trip.PruneLocation("loc-x"))
	assert.Equal(t, StringSlice{"loc-a"}, trip.Locations)
}

func TestTrip_JSONOmitsUnloadedCreator(t *testing.T) {
	trip := Trip{ID: "t-1", Title: "BKK Weekend", CreatorID: "u-1"}

	data, err := json.Marshal(trip)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"creator"`, "no zero-valued creator object")
	assert.Contains(t, string(data), `"creator_id"`)
}

func TestIsValidPrivacy(t *testing.T) {
	for _, p := range []string{PrivacyPublic, PrivacyPrivate, PrivacyFollowers, PrivacyLink} {
		assert.True(t, IsValidPrivacy(p), p)
	}
	assert.False(t, IsValidPrivacy("secret"))
	assert.False(t, IsValidPrivacy(""))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusPlanning, StatusInProgress, StatusCompleted, StatusCancelled} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("done"))
}
