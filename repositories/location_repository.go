package repositories

import (
	"mixtrip-api/models"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

func (r *LocationRepository) FindByID(id string) (*models.Location, error) {
	var location models.Location
	if err := r.db.First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *LocationRepository) Save(location *models.Location) error {
	return r.db.Save(location).Error
}

func (r *LocationRepository) Delete(id string) error {
	return r.db.Delete(&models.Location{}, "id = ?", id).Error
}

// Search matches the query as a case-insensitive substring of the location
// name, city or country, optionally filtered by type. The type filter matches
// the quoted value inside the serialized JSON array, which works on both
// MySQL and SQLite.
func (r *LocationRepository) Search(query, locType string, limit int) ([]models.Location, error) {
	q := r.db.Model(&models.Location{})

	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("name LIKE ? OR address_city LIKE ? OR address_country LIKE ?",
			pattern, pattern, pattern)
	}

	if locType != "" && locType != "all" {
		q = q.Where("types LIKE ?", `%"`+locType+`"%`)
	}

	var locations []models.Location
	if err := q.Limit(limit).Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// FindInBounds returns locations inside the coordinate bounding box,
// optionally filtered by type. Exact distance filtering happens in the
// service layer.
func (r *LocationRepository) FindInBounds(minLat, maxLat, minLng, maxLng float64, locType string) ([]models.Location, error) {
	q := r.db.Model(&models.Location{}).
		Where("coord_lat BETWEEN ? AND ?", minLat, maxLat).
		Where("coord_lng BETWEEN ? AND ?", minLng, maxLng)

	if locType != "" && locType != "all" {
		q = q.Where("types LIKE ?", `%"`+locType+`"%`)
	}

	var locations []models.Location
	if err := q.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// FindIDsMatching returns the ids of every location whose name, city or
// country contains the query.
func (r *LocationRepository) FindIDsMatching(query string) ([]string, error) {
	pattern := "%" + query + "%"
	var ids []string
	err := r.db.Model(&models.Location{}).
		Where("name LIKE ? OR address_city LIKE ? OR address_country LIKE ?",
			pattern, pattern, pattern).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListIDs returns the ids of all stored locations.
func (r *LocationRepository) ListIDs() ([]string, error) {
	var ids []string
	if err := r.db.Model(&models.Location{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateUsageStats writes the recounted usage and popularity columns.
func (r *LocationRepository) UpdateUsageStats(id string, usageCount, popularity int) error {
	return r.db.Model(&models.Location{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"usage_count": usageCount,
			"popularity":  popularity,
		}).Error
}
