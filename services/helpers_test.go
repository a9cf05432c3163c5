package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mixtrip-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Trip{},
		&models.TripLike{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) Identity {
	t.Helper()

	user := models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Username: models.GenerateUsernameFromName(name) + "_" + uuid.New().String()[:8],
		Email:    uuid.New().String()[:8] + "@example.com",
		Password: "hashed",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return Identity{UserID: user.ID, Role: user.Role}
}

func seedLocation(t *testing.T, db *gorm.DB, svc *LocationService, owner Identity, name string, lat, lng float64) *models.Location {
	t.Helper()

	location, err := svc.Create(CreateLocationInput{
		Name:        name,
		Coordinates: models.Coordinates{Lat: lat, Lng: lng},
		Types:       []string{"attraction"},
	}, owner)
	require.NoError(t, err)
	return location
}
