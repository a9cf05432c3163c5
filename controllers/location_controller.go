package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mixtrip-api/services"
	"mixtrip-api/utils"
)

type LocationController struct {
	locationService *services.LocationService
	tripService     *services.TripService
}

func NewLocationController(db *gorm.DB) *LocationController {
	return &LocationController{
		locationService: services.NewLocationService(db),
		tripService:     services.NewTripService(db),
	}
}

type CreateLocationRequest struct {
	services.CreateLocationInput
	TripID string `json:"trip_id"`
}

// Create persists a new location and optionally attaches it to one of the
// caller's trips in the same request.
func (lc *LocationController) Create(c *gin.Context) {
	identity := identityFromContext(c)

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := lc.locationService.Create(req.CreateLocationInput, identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Best effort: attaching to a trip the caller does not own is ignored,
	// matching the standalone create semantics
	if req.TripID != "" {
		_, _ = lc.tripService.AddLocation(req.TripID, location.ID, identity)
	}

	utils.SendCreated(c, "Location created successfully", gin.H{"location": location})
}

func (lc *LocationController) Get(c *gin.Context) {
	identity := identityFromContext(c)
	id := c.Param("id")

	location, err := lc.locationService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	relatedTrips, err := lc.locationService.RelatedTrips(id, 5)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location":      location,
		"related_trips": relatedTrips,
		"is_owner":      services.IsOwner(location.CreatorID, identity.UserID),
	})
}

func (lc *LocationController) Update(c *gin.Context) {
	identity := identityFromContext(c)
	id := c.Param("id")

	var input services.UpdateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := lc.locationService.Update(id, input, identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Location updated successfully", gin.H{"location": location})
}

func (lc *LocationController) Delete(c *gin.Context) {
	identity := identityFromContext(c)
	id := c.Param("id")

	if err := lc.locationService.Delete(id, identity); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Location deleted successfully", nil)
}

func (lc *LocationController) Search(c *gin.Context) {
	query := c.Query("query")
	locType := c.Query("type")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	locations, err := lc.locationService.Search(query, locType, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(locations),
		"data":  locations,
	})
}

func (lc *LocationController) Nearby(c *gin.Context) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	if latStr == "" || lngStr == "" {
		utils.SendError(c, http.StatusBadRequest, "Latitude and longitude are required")
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid coordinates")
		return
	}

	distance, _ := strconv.ParseFloat(c.DefaultQuery("distance", "5000"), 64)
	locType := c.Query("type")

	locations, err := lc.locationService.Nearby(lat, lng, distance, locType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if locations == nil {
		locations = []services.LocationWithDistance{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(locations),
		"data":  locations,
	})
}
