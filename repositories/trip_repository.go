package repositories

import (
	"mixtrip-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExplorePageSize is the fixed page size of the explore listing.
const ExplorePageSize = 12

// ExploreQuery carries the explore filters. Zero values mean "no filter".
type ExploreQuery struct {
	Search      string   // substring of title or description
	Tag         string   // tag membership
	LocationIDs []string // trips containing any of these location ids
	MinDuration int      // inclusive, 0 = open
	MaxDuration int      // inclusive, 0 = open
	Sort        string   // newest (default), oldest, popular
	Page        int      // 1-indexed
}

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Create(trip *models.Trip) error {
	return r.db.Create(trip).Error
}

func (r *TripRepository) FindByID(id string) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.Preload("Creator").First(&trip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// Save writes the trip columns only; the preloaded creator is never written
// back through the association.
func (r *TripRepository) Save(trip *models.Trip) error {
	return r.db.Omit(clause.Associations).Save(trip).Error
}

func (r *TripRepository) Delete(id string) error {
	return r.db.Delete(&models.Trip{}, "id = ?", id).Error
}

// IncrementViews bumps the view counter without a read-modify-write cycle.
func (r *TripRepository) IncrementViews(id string) error {
	return r.db.Model(&models.Trip{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *TripRepository) HasLike(tripID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.TripLike{}).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Count(&count).Error
	return count > 0, err
}

// CreateLike inserts the like row if absent. A concurrent insert of the same
// (trip_id, user_id) pair hits the unique index and is silently ignored, so
// racing toggles from one user converge on a single row instead of erroring.
func (r *TripRepository) CreateLike(tripID, userID string) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TripLike{TripID: tripID, UserID: userID}).Error
}

func (r *TripRepository) DeleteLike(tripID, userID string) error {
	return r.db.Where("trip_id = ? AND user_id = ?", tripID, userID).
		Delete(&models.TripLike{}).Error
}

func (r *TripRepository) CountLikes(tripID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.TripLike{}).Where("trip_id = ?", tripID).Count(&count).Error
	return count, err
}

func (r *TripRepository) DeleteLikesForTrip(tripID string) error {
	return r.db.Where("trip_id = ?", tripID).Delete(&models.TripLike{}).Error
}

// FindByCreator lists a user's trips with an optional status filter.
// Known sorts: newest (default), oldest, title-asc, title-desc,
// start-date, popularity.
func (r *TripRepository) FindByCreator(creatorID, status, sort string) ([]models.Trip, error) {
	q := r.db.Model(&models.Trip{}).Preload("Creator").Where("creator_id = ?", creatorID)

	if status != "" && models.IsValidStatus(status) {
		q = q.Where("status = ?", status)
	}

	switch sort {
	case "oldest":
		q = q.Order("created_at ASC")
	case "title-asc":
		q = q.Order("title ASC")
	case "title-desc":
		q = q.Order("title DESC")
	case "start-date":
		q = q.Order("start_date ASC")
	case "popularity":
		q = q.Order("views DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var trips []models.Trip
	if err := q.Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

// FindReferencingLocation returns every trip that references the location,
// either in its locations list or from an itinerary activity. The LIKE on
// the serialized JSON columns is a coarse prefilter; membership is confirmed
// exactly in Go.
func (r *TripRepository) FindReferencingLocation(locationID string) ([]models.Trip, error) {
	pattern := `%"` + locationID + `"%`

	var candidates []models.Trip
	err := r.db.Where("locations LIKE ? OR itinerary LIKE ?", pattern, pattern).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	trips := make([]models.Trip, 0, len(candidates))
	for _, trip := range candidates {
		if trip.References(locationID) {
			trips = append(trips, trip)
		}
	}
	return trips, nil
}

// FindPublicByLocation returns up to limit public trips whose location list
// contains the location.
func (r *TripRepository) FindPublicByLocation(locationID string, limit int) ([]models.Trip, error) {
	pattern := `%"` + locationID + `"%`

	var candidates []models.Trip
	err := r.db.Preload("Creator").
		Where("privacy = ?", models.PrivacyPublic).
		Where("locations LIKE ?", pattern).
		Order("created_at DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	trips := make([]models.Trip, 0, limit)
	for _, trip := range candidates {
		if trip.Locations.Contains(locationID) {
			trips = append(trips, trip)
			if len(trips) == limit {
				break
			}
		}
	}
	return trips, nil
}

// Explore lists public trips matching the query, paginated at ExplorePageSize.
// Returns the page of trips and the total match count.
func (r *TripRepository) Explore(query ExploreQuery) ([]models.Trip, int64, error) {
	base := r.db.Model(&models.Trip{}).Where("privacy = ?", models.PrivacyPublic)

	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	if query.Tag != "" {
		base = base.Where("tags LIKE ?", `%"`+query.Tag+`"%`)
	}

	if len(query.LocationIDs) > 0 {
		cond := r.db.Where("locations LIKE ?", `%"`+query.LocationIDs[0]+`"%`)
		for _, id := range query.LocationIDs[1:] {
			cond = cond.Or("locations LIKE ?", `%"`+id+`"%`)
		}
		base = base.Where(cond)
	}

	if query.MinDuration > 0 {
		base = base.Where("duration >= ?", query.MinDuration)
	}
	if query.MaxDuration > 0 {
		base = base.Where("duration <= ?", query.MaxDuration)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch query.Sort {
	case "oldest":
		base = base.Order("created_at ASC")
	case "popular":
		base = base.Order("views DESC")
	default:
		base = base.Order("created_at DESC")
	}

	page := query.Page
	if page < 1 {
		page = 1
	}

	var trips []models.Trip
	err := base.Preload("Creator").
		Offset((page - 1) * ExplorePageSize).Limit(ExplorePageSize).
		Find(&trips).Error
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}
