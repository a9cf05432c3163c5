package services

import (
	"errors"
	"log"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mixtrip-api/models"
	"mixtrip-api/repositories"
	"mixtrip-api/utils"
)

const (
	defaultSearchLimit    = 10
	nearbyResultLimit     = 20
	defaultNearbyDistance = 5000 // meters
)

type LocationService struct {
	db           *gorm.DB
	locationRepo *repositories.LocationRepository
	tripRepo     *repositories.TripRepository
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{
		db:           db,
		locationRepo: repositories.NewLocationRepository(db),
		tripRepo:     repositories.NewTripRepository(db),
	}
}

type CreateLocationInput struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Address     models.Address     `json:"address"`
	Coordinates models.Coordinates `json:"coordinates"`
	PlaceID     string             `json:"place_id"`
	Types       []string           `json:"types"`
	Website     string             `json:"website"`
	ContactInfo models.ContactInfo `json:"contact_info"`
}

type UpdateLocationInput struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Address     *models.Address     `json:"address"`
	Coordinates *models.Coordinates `json:"coordinates"`
	Types       []string            `json:"types"`
	Website     *string             `json:"website"`
	ContactInfo *models.ContactInfo `json:"contact_info"`
}

// LocationWithDistance is a nearby search result
type LocationWithDistance struct {
	models.Location
	DistanceMeters float64 `json:"distance_meters"`
}

// Create validates the input and persists a new location owned by the caller.
// Source becomes "google" when a place id is supplied, "user" otherwise.
func (s *LocationService) Create(input CreateLocationInput, identity Identity) (*models.Location, error) {
	if !identity.IsAuthenticated() {
		return nil, NewForbiddenError("authentication required")
	}

	// Length limits count characters, not bytes
	if n := utf8.RuneCountInString(input.Name); n < 1 || n > 100 {
		return nil, NewValidationError("name", "name must be between 1 and 100 characters")
	}
	if utf8.RuneCountInString(input.Description) > 1000 {
		return nil, NewValidationError("description", "description cannot exceed 1000 characters")
	}
	if !utils.IsValidLatitude(input.Coordinates.Lat) {
		return nil, NewValidationError("coordinates.lat", "latitude must be between -90 and 90")
	}
	if !utils.IsValidLongitude(input.Coordinates.Lng) {
		return nil, NewValidationError("coordinates.lng", "longitude must be between -180 and 180")
	}
	if input.Website != "" && !utils.IsValidWebsite(input.Website) {
		return nil, NewValidationError("website", "invalid website URL")
	}

	types := input.Types
	if len(types) == 0 {
		types = []string{"other"}
	}
	for _, t := range types {
		if !models.IsValidLocationType(t) {
			return nil, NewValidationError("types", "unknown location type: "+t)
		}
	}

	source := models.SourceUser
	if input.PlaceID != "" {
		source = models.SourceGoogle
	}

	creatorID := identity.UserID
	location := &models.Location{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Coordinates: input.Coordinates,
		PlaceID:     input.PlaceID,
		Types:       models.StringSlice(types),
		CreatorID:   &creatorID,
		Website:     input.Website,
		ContactInfo: input.ContactInfo,
		Source:      source,
	}

	if err := s.locationRepo.Create(location); err != nil {
		return nil, err
	}

	log.Printf("New location created: %s by user %s", location.Name, identity.UserID)
	return location, nil
}

// Get returns a location by id. Location reads are not privacy gated.
func (s *LocationService) Get(id string) (*models.Location, error) {
	location, err := s.locationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("location", id)
		}
		return nil, err
	}
	return location, nil
}

// RelatedTrips returns up to limit public trips that include the location.
func (s *LocationService) RelatedTrips(locationID string, limit int) ([]models.Trip, error) {
	return s.tripRepo.FindPublicByLocation(locationID, limit)
}

// Update merges the provided fields into the location. Only the creator (or
// an admin) may edit it; a creator-less system location may be edited by any
// authenticated caller.
func (s *LocationService) Update(id string, input UpdateLocationInput, identity Identity) (*models.Location, error) {
	location, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !CanWriteLocation(location, identity) {
		return nil, NewForbiddenError("you do not have permission to update this location")
	}

	if input.Name != nil {
		if n := utf8.RuneCountInString(*input.Name); n < 1 || n > 100 {
			return nil, NewValidationError("name", "name must be between 1 and 100 characters")
		}
		location.Name = *input.Name
	}
	if input.Description != nil {
		if utf8.RuneCountInString(*input.Description) > 1000 {
			return nil, NewValidationError("description", "description cannot exceed 1000 characters")
		}
		location.Description = *input.Description
	}
	if input.Address != nil {
		location.Address = mergeAddress(location.Address, *input.Address)
	}
	if input.Coordinates != nil {
		if !utils.IsValidLatitude(input.Coordinates.Lat) {
			return nil, NewValidationError("coordinates.lat", "latitude must be between -90 and 90")
		}
		if !utils.IsValidLongitude(input.Coordinates.Lng) {
			return nil, NewValidationError("coordinates.lng", "longitude must be between -180 and 180")
		}
		location.Coordinates = *input.Coordinates
	}
	if input.Types != nil {
		for _, t := range input.Types {
			if !models.IsValidLocationType(t) {
				return nil, NewValidationError("types", "unknown location type: "+t)
			}
		}
		location.Types = models.StringSlice(input.Types)
	}
	if input.Website != nil {
		if *input.Website != "" && !utils.IsValidWebsite(*input.Website) {
			return nil, NewValidationError("website", "invalid website URL")
		}
		location.Website = *input.Website
	}
	if input.ContactInfo != nil {
		if input.ContactInfo.Phone != "" {
			location.ContactInfo.Phone = input.ContactInfo.Phone
		}
		if input.ContactInfo.Email != "" {
			location.ContactInfo.Email = input.ContactInfo.Email
		}
	}

	if err := s.locationRepo.Save(location); err != nil {
		return nil, err
	}

	log.Printf("Location updated: %s by user %s", location.Name, identity.UserID)
	return location, nil
}

// Delete removes a location after repairing every trip that references it.
// The repairs and the delete run in one transaction, so the location is never
// gone while a trip still points at it: if any repair fails, nothing is
// deleted.
func (s *LocationService) Delete(id string, identity Identity) error {
	location, err := s.Get(id)
	if err != nil {
		return err
	}

	if !CanWriteLocation(location, identity) {
		return NewForbiddenError("you do not have permission to delete this location")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		tripRepo := repositories.NewTripRepository(tx)
		locationRepo := repositories.NewLocationRepository(tx)

		trips, err := tripRepo.FindReferencingLocation(id)
		if err != nil {
			return err
		}

		for i := range trips {
			if trips[i].PruneLocation(id) {
				if err := tripRepo.Save(&trips[i]); err != nil {
					return err
				}
			}
		}

		if len(trips) > 0 {
			log.Printf("Location %s removed from %d trips", location.Name, len(trips))
		}

		return locationRepo.Delete(id)
	})
	if err != nil {
		return err
	}

	log.Printf("Location deleted: %s by user %s", location.Name, identity.UserID)
	return nil
}

// Search matches the query against name, city and country, optionally
// filtered by type.
func (s *LocationService) Search(query, locType string, limit int) ([]models.Location, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return s.locationRepo.Search(query, locType, limit)
}

// Nearby returns up to 20 locations within maxDistance meters of the point,
// ordered by distance ascending. A coarse bounding box narrows the candidate
// set before the exact Haversine distance is computed.
func (s *LocationService) Nearby(lat, lng, maxDistance float64, locType string) ([]LocationWithDistance, error) {
	if !utils.IsValidLatitude(lat) {
		return nil, NewValidationError("lat", "latitude must be between -90 and 90")
	}
	if !utils.IsValidLongitude(lng) {
		return nil, NewValidationError("lng", "longitude must be between -180 and 180")
	}
	if maxDistance <= 0 {
		maxDistance = defaultNearbyDistance
	}

	// One degree of latitude is roughly 111.32 km
	latDelta := maxDistance / 111320
	lngDelta := latDelta
	if cosLat := math.Cos(lat * math.Pi / 180); cosLat > 0.01 {
		lngDelta = latDelta / cosLat
	}

	candidates, err := s.locationRepo.FindInBounds(lat-latDelta, lat+latDelta, lng-lngDelta, lng+lngDelta, locType)
	if err != nil {
		return nil, err
	}

	results := make([]LocationWithDistance, 0, len(candidates))
	for _, loc := range candidates {
		distance := distanceMeters(lat, lng, loc.Coordinates.Lat, loc.Coordinates.Lng)
		if distance <= maxDistance {
			results = append(results, LocationWithDistance{Location: loc, DistanceMeters: distance})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})

	if len(results) > nearbyResultLimit {
		results = results[:nearbyResultLimit]
	}
	return results, nil
}

func mergeAddress(current, update models.Address) models.Address {
	if update.Street != "" {
		current.Street = update.Street
	}
	if update.City != "" {
		current.City = update.City
	}
	if update.State != "" {
		current.State = update.State
	}
	if update.Country != "" {
		current.Country = update.Country
	}
	if update.PostalCode != "" {
		current.PostalCode = update.PostalCode
	}
	if update.FormattedAddress != "" {
		current.FormattedAddress = update.FormattedAddress
	}
	return current
}

// distanceMeters calculates distance between two points using Haversine formula
func distanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}
