package services

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mixtrip-api/models"
	"mixtrip-api/repositories"
	"mixtrip-api/utils"
)

type TripService struct {
	db           *gorm.DB
	tripRepo     *repositories.TripRepository
	locationRepo *repositories.LocationRepository
}

func NewTripService(db *gorm.DB) *TripService {
	return &TripService{
		db:           db,
		tripRepo:     repositories.NewTripRepository(db),
		locationRepo: repositories.NewLocationRepository(db),
	}
}

type CreateTripInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Privacy     string     `json:"privacy"`
	Tags        []string   `json:"tags"`
}

type UpdateTripInput struct {
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	StartDate      *time.Time         `json:"start_date"`
	EndDate        *time.Time         `json:"end_date"`
	Privacy        *string            `json:"privacy"`
	Tags           []string           `json:"tags"`
	Status         *string            `json:"status"`
	BudgetCurrency *string            `json:"budget_currency"`
	BudgetItems    models.BudgetItems `json:"budget_items"`
}

type ActivityInput struct {
	LocationID  string `json:"location_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Notes       string `json:"notes"`
	Order       int    `json:"order"`
}

type ExploreInput struct {
	Search   string
	Tag      string
	Location string
	Duration string // "min-max", either side open
	Sort     string
	Page     int
}

type ExploreResult struct {
	Trips      []models.Trip `json:"trips"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Total      int64         `json:"total"`
	HasNext    bool          `json:"has_next"`
	HasPrev    bool          `json:"has_prev"`
}

// Length limits count characters, not bytes
func validateTripTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < 3 || n > 100 {
		return NewValidationError("title", "title must be between 3 and 100 characters")
	}
	return nil
}

// Create persists a new trip for the caller. Duration is derived from the
// dates when both are set; privacy defaults to public and status to planning.
func (s *TripService) Create(input CreateTripInput, identity Identity) (*models.Trip, error) {
	if !identity.IsAuthenticated() {
		return nil, NewForbiddenError("authentication required")
	}
	if err := validateTripTitle(input.Title); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(input.Description) > 1000 {
		return nil, NewValidationError("description", "description cannot exceed 1000 characters")
	}

	privacy := input.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}
	if !models.IsValidPrivacy(privacy) {
		return nil, NewValidationError("privacy", "unknown privacy level: "+privacy)
	}

	trip := &models.Trip{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		CoverImage:  models.DefaultCoverImage,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatorID:   identity.UserID,
		Locations:   models.StringSlice{},
		Itinerary:   models.ItineraryDays{},
		Privacy:     privacy,
		Tags:        models.StringSlice(input.Tags),
		Status:      models.StatusPlanning,
	}

	if trip.StartDate != nil && trip.EndDate != nil {
		trip.Duration = models.DurationDays(*trip.StartDate, *trip.EndDate)
	}

	if err := s.tripRepo.Create(trip); err != nil {
		return nil, err
	}

	log.Printf("New trip created: %s by user %s", trip.Title, identity.UserID)
	return trip, nil
}

func (s *TripService) findTrip(id string) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("trip", id)
		}
		return nil, err
	}
	return trip, nil
}

// Get returns a trip the caller is allowed to see and counts the view when
// the caller is not the creator. The view counter is best effort, never
// decremented and not exactly-once under races.
func (s *TripService) Get(id string, identity Identity) (*models.Trip, error) {
	trip, err := s.findTrip(id)
	if err != nil {
		return nil, err
	}

	if !CanReadTrip(trip, identity) {
		return nil, NewForbiddenError("this trip is private")
	}

	if err := s.View(trip, identity.UserID); err != nil {
		return nil, err
	}
	return trip, nil
}

// View increments the trip's view counter exactly when the viewer is absent
// or differs from the creator.
func (s *TripService) View(trip *models.Trip, viewerID string) error {
	if viewerID != "" && viewerID == trip.CreatorID {
		return nil
	}
	if err := s.tripRepo.IncrementViews(trip.ID); err != nil {
		return err
	}
	trip.Views++
	return nil
}

// Update merges the provided fields. Only the creator (or an admin) may
// mutate the trip; duration is recomputed whenever both dates are present
// after the merge.
func (s *TripService) Update(id string, input UpdateTripInput, identity Identity) (*models.Trip, error) {
	trip, err := s.findTrip(id)
	if err != nil {
		return nil, err
	}

	if !CanWriteTrip(trip, identity) {
		return nil, NewForbiddenError("you do not have permission to edit this trip")
	}

	if input.Title != nil {
		if err := validateTripTitle(*input.Title); err != nil {
			return nil, err
		}
		trip.Title = *input.Title
	}
	if input.Description != nil {
		if utf8.RuneCountInString(*input.Description) > 1000 {
			return nil, NewValidationError("description", "description cannot exceed 1000 characters")
		}
		trip.Description = *input.Description
	}
	if input.StartDate != nil {
		trip.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		trip.EndDate = input.EndDate
	}
	if input.Privacy != nil {
		if !models.IsValidPrivacy(*input.Privacy) {
			return nil, NewValidationError("privacy", "unknown privacy level: "+*input.Privacy)
		}
		trip.Privacy = *input.Privacy
	}
	if input.Tags != nil {
		trip.Tags = models.StringSlice(input.Tags)
	}
	if input.Status != nil {
		if !models.IsValidStatus(*input.Status) {
			return nil, NewValidationError("status", "unknown status: "+*input.Status)
		}
		trip.Status = *input.Status
	}
	if input.BudgetCurrency != nil {
		trip.BudgetCurrency = *input.BudgetCurrency
	}
	if input.BudgetItems != nil {
		trip.BudgetItems = input.BudgetItems
	}

	// Derived duration is authoritative over any caller-supplied value
	if trip.StartDate != nil && trip.EndDate != nil {
		trip.Duration = models.DurationDays(*trip.StartDate, *trip.EndDate)
	}

	if err := s.tripRepo.Save(trip); err != nil {
		return nil, err
	}

	log.Printf("Trip updated: %s by user %s", trip.Title, identity.UserID)
	return trip, nil
}

// Delete hard-deletes a trip and its likes. Nothing else cascades since the
// trip is the dependent side of every relationship.
func (s *TripService) Delete(id string, identity Identity) error {
	trip, err := s.findTrip(id)
	if err != nil {
		return err
	}

	if !CanWriteTrip(trip, identity) {
		return NewForbiddenError("you do not have permission to delete this trip")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		tripRepo := repositories.NewTripRepository(tx)
		if err := tripRepo.DeleteLikesForTrip(id); err != nil {
			return err
		}
		return tripRepo.Delete(id)
	})
	if err != nil {
		return err
	}

	log.Printf("Trip deleted: %s by user %s", trip.Title, identity.UserID)
	return nil
}

// MyTrips lists the caller's own trips with optional status filter and sort.
func (s *TripService) MyTrips(identity Identity, status, sort string) ([]models.Trip, error) {
	if !identity.IsAuthenticated() {
		return nil, NewForbiddenError("authentication required")
	}
	return s.tripRepo.FindByCreator(identity.UserID, status, sort)
}

// UserTrips lists another user's trips, filtered down to what the viewer may
// see.
func (s *TripService) UserTrips(userID string, viewer Identity) ([]models.Trip, error) {
	trips, err := s.tripRepo.FindByCreator(userID, "", "")
	if err != nil {
		return nil, err
	}

	visible := make([]models.Trip, 0, len(trips))
	for i := range trips {
		if CanReadTrip(&trips[i], viewer) {
			visible = append(visible, trips[i])
		}
	}
	return visible, nil
}

// AddLocation appends a location to the trip's ordered location list.
// Adding a location that is already present is a conflict, not a validation
// failure.
func (s *TripService) AddLocation(tripID, locationID string, identity Identity) (*models.Trip, error) {
	trip, err := s.findTrip(tripID)
	if err != nil {
		return nil, err
	}

	if _, err := s.locationRepo.FindByID(locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("location", locationID)
		}
		return nil, err
	}

	if !CanWriteTrip(trip, identity) {
		return nil, NewForbiddenError("you do not have permission to modify this trip")
	}

	if trip.Locations.Contains(locationID) {
		return nil, NewConflictError("location is already added to this trip")
	}

	trip.Locations = append(trip.Locations, locationID)
	if err := s.tripRepo.Save(trip); err != nil {
		return nil, err
	}

	log.Printf("Location %s added to trip %s", locationID, trip.Title)
	return trip, nil
}

// RemoveLocation removes the location from the trip's location list and
// filters it out of every day's activities.
func (s *TripService) RemoveLocation(tripID, locationID string, identity Identity) (*models.Trip, error) {
	trip, err := s.findTrip(tripID)
	if err != nil {
		return nil, err
	}

	if !CanWriteTrip(trip, identity) {
		return nil, NewForbiddenError("you do not have permission to modify this trip")
	}

	if !trip.Locations.Contains(locationID) {
		return nil, NewValidationError("location_id", "location is not in this trip")
	}

	trip.PruneLocation(locationID)
	if err := s.tripRepo.Save(trip); err != nil {
		return nil, err
	}

	log.Printf("Location removed from trip %s", trip.Title)
	return trip, nil
}

// AddActivity appends an activity to the day's plan, creating the day plan
// if it does not exist yet. The referenced location, if any, is not required
// to belong to the trip's location list.
func (s *TripService) AddActivity(tripID string, day int, input ActivityInput, identity Identity) (*models.Trip, error) {
	trip, err := s.findTrip(tripID)
	if err != nil {
		return nil, err
	}

	if !CanWriteTrip(trip, identity) {
		return nil, NewForbiddenError("you do not have permission to modify this trip")
	}

	if day < 1 {
		return nil, NewValidationError("day", "day must be at least 1")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, NewValidationError("title", "activity title is required")
	}
	if input.StartTime != "" && !utils.IsValidTime(input.StartTime) {
		return nil, NewValidationError("start_time", "start time must match HH:MM")
	}
	if input.EndTime != "" && !utils.IsValidTime(input.EndTime) {
		return nil, NewValidationError("end_time", "end time must match HH:MM")
	}

	activity := models.Activity{
		LocationID:  input.LocationID,
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Notes:       input.Notes,
		Order:       input.Order,
	}

	dayIndex := -1
	for i := range trip.Itinerary {
		if trip.Itinerary[i].Day == day {
			dayIndex = i
			break
		}
	}
	if dayIndex == -1 {
		trip.Itinerary = append(trip.Itinerary, models.ItineraryDay{Day: day})
		dayIndex = len(trip.Itinerary) - 1
	}
	trip.Itinerary[dayIndex].Activities = append(trip.Itinerary[dayIndex].Activities, activity)

	if err := s.tripRepo.Save(trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// ToggleLike flips the caller's like on the trip and returns the new state
// and count. The unique (trip_id, user_id) index keeps concurrent toggles
// from the same user from double-inserting.
func (s *TripService) ToggleLike(tripID string, identity Identity) (liked bool, count int64, err error) {
	if !identity.IsAuthenticated() {
		return false, 0, NewForbiddenError("authentication required")
	}

	trip, err := s.findTrip(tripID)
	if err != nil {
		return false, 0, err
	}

	has, err := s.tripRepo.HasLike(trip.ID, identity.UserID)
	if err != nil {
		return false, 0, err
	}

	if has {
		if err := s.tripRepo.DeleteLike(trip.ID, identity.UserID); err != nil {
			return false, 0, err
		}
		liked = false
	} else {
		if err := s.tripRepo.CreateLike(trip.ID, identity.UserID); err != nil {
			return false, 0, err
		}
		liked = true
	}

	count, err = s.tripRepo.CountLikes(trip.ID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// HasLiked reports whether the user currently likes the trip.
func (s *TripService) HasLiked(tripID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.tripRepo.HasLike(tripID, userID)
}

// LikeCount returns the trip's current like count.
func (s *TripService) LikeCount(tripID string) (int64, error) {
	return s.tripRepo.CountLikes(tripID)
}

// Explore lists public trips matching the filters, 12 per page. A location
// filter is resolved to a location id set first; no matching location means
// an empty result.
func (s *TripService) Explore(input ExploreInput) (*ExploreResult, error) {
	query := repositories.ExploreQuery{
		Search: input.Search,
		Tag:    input.Tag,
		Sort:   input.Sort,
		Page:   input.Page,
	}
	if query.Page < 1 {
		query.Page = 1
	}

	if input.Location != "" {
		ids, err := s.locationRepo.FindIDsMatching(input.Location)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return &ExploreResult{Trips: []models.Trip{}, Page: query.Page}, nil
		}
		query.LocationIDs = ids
	}

	query.MinDuration, query.MaxDuration = parseDurationRange(input.Duration)

	trips, total, err := s.tripRepo.Explore(query)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + repositories.ExplorePageSize - 1) / repositories.ExplorePageSize)
	return &ExploreResult{
		Trips:      trips,
		Page:       query.Page,
		TotalPages: totalPages,
		Total:      total,
		HasNext:    query.Page < totalPages,
		HasPrev:    query.Page > 1,
	}, nil
}

// parseDurationRange parses "min-max" with either side optional, or a single
// number meaning an exact lower bound.
func parseDurationRange(s string) (min, max int) {
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "-", 2)
	if v, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil && v > 0 {
		min = v
	}
	if len(parts) == 2 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil && v > 0 {
			max = v
		}
	}
	return min, max
}
