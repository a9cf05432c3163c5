package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mixtrip-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Trip{},
		&models.TripLike{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Composite and search indexes for the hot query paths

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trips_creator_created ON trips(creator_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for trips: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trips_privacy_created ON trips(privacy, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for trips privacy: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trips_privacy_views ON trips(privacy, views DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for trips views: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_locations_name ON locations(name)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for locations name: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_locations_coords ON locations(coord_lat, coord_lng)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for locations coordinates: %v\n", err)
	}

	return nil
}

// SeedData populates the database with system locations for development and
// fresh installs. System records have no creator and may be edited by any
// authenticated user.
func SeedData(db *gorm.DB) error {
	var locationCount int64
	db.Model(&models.Location{}).Count(&locationCount)

	if locationCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	systemLocations := []models.Location{
		{
			ID:   "loc-grand-palace",
			Name: "Grand Palace",
			Description: "Former residence of the Kings of Siam, home to the Temple of " +
				"the Emerald Buddha.",
			Address: models.Address{
				City:    "Bangkok",
				Country: "Thailand",
			},
			Coordinates: models.Coordinates{Lat: 13.7500, Lng: 100.4914},
			Types:       models.StringSlice{"attraction", "temple", "landmark"},
			IsVerified:  true,
			Source:      models.SourceSystem,
		},
		{
			ID:          "loc-wat-arun",
			Name:        "Wat Arun",
			Description: "Temple of Dawn on the west bank of the Chao Phraya River.",
			Address: models.Address{
				City:    "Bangkok",
				Country: "Thailand",
			},
			Coordinates: models.Coordinates{Lat: 13.7437, Lng: 100.4889},
			Types:       models.StringSlice{"temple", "landmark"},
			IsVerified:  true,
			Source:      models.SourceSystem,
		},
		{
			ID:          "loc-chatuchak",
			Name:        "Chatuchak Weekend Market",
			Description: "One of the largest markets in the world with over 15,000 stalls.",
			Address: models.Address{
				City:    "Bangkok",
				Country: "Thailand",
			},
			Coordinates: models.Coordinates{Lat: 13.7999, Lng: 100.5502},
			Types:       models.StringSlice{"shopping"},
			IsVerified:  true,
			Source:      models.SourceSystem,
		},
		{
			ID:          "loc-doi-suthep",
			Name:        "Wat Phra That Doi Suthep",
			Description: "Mountain temple overlooking Chiang Mai.",
			Address: models.Address{
				City:    "Chiang Mai",
				Country: "Thailand",
			},
			Coordinates: models.Coordinates{Lat: 18.8048, Lng: 98.9216},
			Types:       models.StringSlice{"temple", "viewpoint"},
			IsVerified:  true,
			Source:      models.SourceSystem,
		},
	}

	for _, location := range systemLocations {
		if err := db.Create(&location).Error; err != nil {
			fmt.Printf("Warning: Could not create system location %s: %v\n", location.Name, err)
		}
	}

	fmt.Println("Database seeded with system locations")
	return nil
}
