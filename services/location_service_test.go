package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixtrip-api/models"
)

func TestLocationService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	owner := seedUser(t, db, "Somsak")

	location, err := svc.Create(CreateLocationInput{
		Name:        "Grand Palace",
		Coordinates: models.Coordinates{Lat: 13.75, Lng: 100.4914},
	}, owner)
	require.NoError(t, err)

	assert.Equal(t, models.SourceUser, location.Source)
	assert.Equal(t, models.StringSlice{"other"}, location.Types, "types default to other")
	require.NotNil(t, location.CreatorID)
	assert.Equal(t, owner.UserID, *location.CreatorID)
}

func TestLocationService_Create_GoogleSource(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	owner := seedUser(t, db, "Somsak")

	location, err := svc.Create(CreateLocationInput{
		Name:        "Wat Arun",
		PlaceID:     "ChIJn0d0Z-6Z4jAR8Z1A1zXXXXX",
		Coordinates: models.Coordinates{Lat: 13.7437, Lng: 100.4888},
		Types:       []string{"temple", "landmark"},
	}, owner)
	require.NoError(t, err)

	assert.Equal(t, models.SourceGoogle, location.Source, "place id implies google source")
	assert.Equal(t, models.StringSlice{"temple", "landmark"}, location.Types)
}

func TestLocationService_Create_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	owner := seedUser(t, db, "Somsak")

	var validationErr *ValidationError

	_, err := svc.Create(CreateLocationInput{Name: ""}, owner)
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "name", validationErr.Field)

	_, err = svc.Create(CreateLocationInput{
		Name:        "Nowhere",
		Coordinates: models.Coordinates{Lat: 91, Lng: 0},
	}, owner)
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "coordinates.lat", validationErr.Field)

	_, err = svc.Create(CreateLocationInput{
		Name:        "Nowhere",
		Coordinates: models.Coordinates{Lat: 0, Lng: 181},
	}, owner)
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "coordinates.lng", validationErr.Field)

	_, err = svc.Create(CreateLocationInput{Name: "Nowhere", Types: []string{"volcano"}}, owner)
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "types", validationErr.Field)

	_, err = svc.Create(CreateLocationInput{Name: "Nowhere", Website: "not a url"}, owner)
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "website", validationErr.Field)

	var forbiddenErr *ForbiddenError
	_, err = svc.Create(CreateLocationInput{Name: "Nowhere"}, Identity{})
	assert.True(t, errors.As(err, &forbiddenErr))
}

func TestLocationService_Create_MultibyteName(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	owner := seedUser(t, db, "Somsak")

	// 100 Thai characters is 300 bytes; limits count characters
	name := strings.Repeat("ว", 100)
	location, err := svc.Create(CreateLocationInput{Name: name}, owner)
	require.NoError(t, err)
	assert.Equal(t, name, location.Name)

	var validationErr *ValidationError
	_, err = svc.Create(CreateLocationInput{Name: strings.Repeat("ว", 101)}, owner)
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "name", validationErr.Field)
}

func TestLocationService_Update_Permissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	owner := seedUser(t, db, "Somsak")
	stranger := seedUser(t, db, "Malee")

	location := seedLocation(t, db, svc, owner, "Grand Palace", 13.75, 100.4914)

	newName := "Royal Grand Palace"
	var forbiddenErr *ForbiddenError
	_, err := svc.Update(location.ID, UpdateLocationInput{Name: &newName}, stranger)
	assert.True(t, errors.As(err, &forbiddenErr))

	updated, err := svc.Update(location.ID, UpdateLocationInput{Name: &newName}, owner)
	require.NoError(t, err)
	assert.Equal(t, "Royal Grand Palace", updated.Name)
}

func TestLocationService_Update_SystemLocation(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	someone := seedUser(t, db, "Malee")

	// Seeded locations have no creator and are editable by any signed-in user
	system := models.Location{
		ID:          uuid.New().String(),
		Name:        "Doi Suthep",
		Coordinates: models.Coordinates{Lat: 18.8048, Lng: 98.9217},
		Types:       models.StringSlice{"temple"},
		Source:      models.SourceSystem,
		IsVerified:  true,
	}
	require.NoError(t, db.Create(&system).Error)

	desc := "Sacred mountain temple overlooking Chiang Mai"
	updated, err := svc.Update(system.ID, UpdateLocationInput{Description: &desc}, someone)
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)

	var forbiddenErr *ForbiddenError
	_, err = svc.Update(system.ID, UpdateLocationInput{Description: &desc}, Identity{})
	assert.True(t, errors.As(err, &forbiddenErr))
}

func TestLocationService_Update_MergesAddress(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	owner := seedUser(t, db, "Somsak")

	location, err := svc.Create(CreateLocationInput{
		Name:    "Grand Palace",
		Address: models.Address{City: "Bangkok", Country: "Thailand"},
	}, owner)
	require.NoError(t, err)

	updated, err := svc.Update(location.ID, UpdateLocationInput{
		Address: &models.Address{Street: "Na Phra Lan Road"},
	}, owner)
	require.NoError(t, err)

	assert.Equal(t, "Na Phra Lan Road", updated.Address.Street)
	assert.Equal(t, "Bangkok", updated.Address.City, "unset fields keep their old values")
	assert.Equal(t, "Thailand", updated.Address.Country)
}

func TestLocationService_Delete_RepairsTrips(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	tripSvc := NewTripService(db)
	owner := seedUser(t, db, "Somsak")

	palace := seedLocation(t, db, svc, owner, "Grand Palace", 13.75, 100.4914)
	market := seedLocation(t, db, svc, owner, "Chatuchak Market", 13.7999, 100.5502)

	first, err := tripSvc.Create(CreateTripInput{Title: "BKK Weekend"}, owner)
	require.NoError(t, err)
	_, err = tripSvc.AddLocation(first.ID, palace.ID, owner)
	require.NoError(t, err)
	_, err = tripSvc.AddLocation(first.ID, market.ID, owner)
	require.NoError(t, err)
	_, err = tripSvc.AddActivity(first.ID, 1, ActivityInput{Title: "Palace tour", LocationID: palace.ID}, owner)
	require.NoError(t, err)

	second, err := tripSvc.Create(CreateTripInput{Title: "Temple Run"}, owner)
	require.NoError(t, err)
	_, err = tripSvc.AddLocation(second.ID, palace.ID, owner)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(palace.ID, owner))

	var notFoundErr *NotFoundError
	_, err = svc.Get(palace.ID)
	assert.True(t, errors.As(err, &notFoundErr))

	// Both trips lost the reference; other content survived
	repaired, err := tripSvc.Get(first.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, models.StringSlice{market.ID}, repaired.Locations)
	require.Len(t, repaired.Itinerary, 1)
	assert.Empty(t, repaired.Itinerary[0].Activities)

	repaired, err = tripSvc.Get(second.ID, owner)
	require.NoError(t, err)
	assert.Empty(t, repaired.Locations)
}

func TestLocationService_Delete_Permissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	owner := seedUser(t, db, "Somsak")
	stranger := seedUser(t, db, "Malee")

	location := seedLocation(t, db, svc, owner, "Grand Palace", 13.75, 100.4914)

	var forbiddenErr *ForbiddenError
	err := svc.Delete(location.ID, stranger)
	assert.True(t, errors.As(err, &forbiddenErr))

	_, err = svc.Get(location.ID)
	require.NoError(t, err, "a forbidden delete must leave the location in place")
}

func TestLocationService_Search(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	owner := seedUser(t, db, "Somsak")

	_, err := svc.Create(CreateLocationInput{
		Name:    "Grand Palace",
		Address: models.Address{City: "Bangkok", Country: "Thailand"},
		Types:   []string{"landmark"},
	}, owner)
	require.NoError(t, err)
	_, err = svc.Create(CreateLocationInput{
		Name:    "Chatuchak Market",
		Address: models.Address{City: "Bangkok", Country: "Thailand"},
		Types:   []string{"shopping"},
	}, owner)
	require.NoError(t, err)

	byName, err := svc.Search("Palace", "", 0)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Grand Palace", byName[0].Name)

	byCity, err := svc.Search("Bangkok", "", 0)
	require.NoError(t, err)
	assert.Len(t, byCity, 2)

	byType, err := svc.Search("Bangkok", "shopping", 0)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Chatuchak Market", byType[0].Name)
}

func TestLocationService_Nearby(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	owner := seedUser(t, db, "Somsak")

	// All near the Grand Palace except Doi Suthep, 580 km away
	seedLocation(t, db, svc, owner, "Wat Pho", 13.7465, 100.493)
	seedLocation(t, db, svc, owner, "Wat Arun", 13.7437, 100.4888)
	seedLocation(t, db, svc, owner, "Doi Suthep", 18.8048, 98.9217)

	results, err := svc.Nearby(13.75, 100.4914, 5000, "")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Ordered nearest first
	assert.Equal(t, "Wat Pho", results[0].Name)
	assert.Equal(t, "Wat Arun", results[1].Name)
	assert.Less(t, results[0].DistanceMeters, results[1].DistanceMeters)
	assert.Less(t, results[1].DistanceMeters, 5000.0)

	var validationErr *ValidationError
	_, err = svc.Nearby(123, 100, 5000, "")
	assert.True(t, errors.As(err, &validationErr))
}
