package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"mixtrip-api/repositories"
)

// LocationUsageJob periodically recounts how many trips reference each
// location and refreshes the stored usage and popularity figures, so that
// search ranking and related-trip lookups stay honest even after trips are
// edited or deleted.
type LocationUsageJob struct {
	locationRepo *repositories.LocationRepository
	tripRepo     *repositories.TripRepository
	ticker       *time.Ticker
	done         chan bool
}

// NewLocationUsageJob creates a new location usage recount job
func NewLocationUsageJob(db *gorm.DB, interval time.Duration) *LocationUsageJob {
	return &LocationUsageJob{
		locationRepo: repositories.NewLocationRepository(db),
		tripRepo:     repositories.NewTripRepository(db),
		ticker:       time.NewTicker(interval),
		done:         make(chan bool),
	}
}

// Start begins the recount job
func (j *LocationUsageJob) Start() {
	fmt.Println("Location usage job started")

	go func() {
		// Run immediately on start
		j.recount()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.recount()
			case <-j.done:
				fmt.Println("Location usage job stopped")
				return
			}
		}
	}()
}

// Stop stops the recount job
func (j *LocationUsageJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *LocationUsageJob) recount() {
	ids, err := j.locationRepo.ListIDs()
	if err != nil {
		fmt.Printf("Error listing locations for usage recount: %v\n", err)
		return
	}

	for _, id := range ids {
		trips, err := j.tripRepo.FindReferencingLocation(id)
		if err != nil {
			fmt.Printf("Error recounting usage for location %s: %v\n", id, err)
			continue
		}

		usage := len(trips)
		popularity := usage
		for _, trip := range trips {
			popularity += trip.Views / 10
		}

		if err := j.locationRepo.UpdateUsageStats(id, usage, popularity); err != nil {
			fmt.Printf("Error updating usage for location %s: %v\n", id, err)
		}
	}
}
