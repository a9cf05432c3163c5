package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mixtrip-api/models"
	"mixtrip-api/services"
	"mixtrip-api/utils"
)

type TripController struct {
	tripService *services.TripService
}

func NewTripController(db *gorm.DB) *TripController {
	return &TripController{tripService: services.NewTripService(db)}
}

type CreateTripRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Privacy     string   `json:"privacy"`
	Tags        []string `json:"tags"`
}

func (tc *TripController) Create(c *gin.Context) {
	identity := identityFromContext(c)

	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	endDate, err := parseDate("end_date", req.EndDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	trip, err := tc.tripService.Create(services.CreateTripInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Privacy:     req.Privacy,
		Tags:        req.Tags,
	}, identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SendCreated(c, "Trip created successfully", gin.H{"trip": trip})
}

func (tc *TripController) Get(c *gin.Context) {
	identity := identityFromContext(c)
	id := c.Param("id")

	trip, err := tc.tripService.Get(id, identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	userHasLiked, err := tc.tripService.HasLiked(trip.ID, identity.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	likeCount, err := tc.tripService.LikeCount(trip.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trip":           trip,
		"like_count":     likeCount,
		"user_has_liked": userHasLiked,
		"is_owner":       identity.IsAuthenticated() && trip.CreatorID == identity.UserID,
	})
}

type UpdateTripRequest struct {
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	StartDate      *string            `json:"start_date"`
	EndDate        *string            `json:"end_date"`
	Privacy        *string            `json:"privacy"`
	Tags           []string           `json:"tags"`
	Status         *string            `json:"status"`
	BudgetCurrency *string            `json:"budget_currency"`
	BudgetItems    models.BudgetItems `json:"budget_items"`
}

func (tc *TripController) Update(c *gin.Context) {
	identity := identityFromContext(c)
	id := c.Param("id")

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.UpdateTripInput{
		Title:          req.Title,
		Description:    req.Description,
		Privacy:        req.Privacy,
		Tags:           req.Tags,
		Status:         req.Status,
		BudgetCurrency: req.BudgetCurrency,
		BudgetItems:    req.BudgetItems,
	}

	if req.StartDate != nil {
		startDate, err := parseDate("start_date", *req.StartDate)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		input.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate("end_date", *req.EndDate)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		input.EndDate = endDate
	}

	trip, err := tc.tripService.Update(id, input, identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Trip updated successfully", gin.H{"trip": trip})
}

func (tc *TripController) Delete(c *gin.Context) {
	identity := identityFromContext(c)

	if err := tc.tripService.Delete(c.Param("id"), identity); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Trip deleted successfully", nil)
}

func (tc *TripController) MyTrips(c *gin.Context) {
	identity := identityFromContext(c)
	status := c.Query("status")
	sort := c.DefaultQuery("sort", "newest")

	trips, err := tc.tripService.MyTrips(identity, status, sort)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(trips),
		"trips": trips,
	})
}

func (tc *TripController) ToggleLike(c *gin.Context) {
	identity := identityFromContext(c)

	liked, count, err := tc.tripService.ToggleLike(c.Param("id"), identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Trip liked successfully"
	if !liked {
		message = "Trip unliked successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"liked":      liked,
		"like_count": count,
	})
}

func (tc *TripController) Explore(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := tc.tripService.Explore(services.ExploreInput{
		Search:   c.Query("search"),
		Tag:      c.Query("tag"),
		Location: c.Query("location"),
		Duration: c.Query("duration"),
		Sort:     c.DefaultQuery("sort", "newest"),
		Page:     page,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (tc *TripController) AddLocation(c *gin.Context) {
	identity := identityFromContext(c)

	trip, err := tc.tripService.AddLocation(c.Param("id"), c.Param("locationId"), identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Location added to trip successfully", gin.H{"trip": trip})
}

func (tc *TripController) RemoveLocation(c *gin.Context) {
	identity := identityFromContext(c)

	trip, err := tc.tripService.RemoveLocation(c.Param("id"), c.Param("locationId"), identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Location removed from trip successfully", gin.H{"trip": trip})
}

func (tc *TripController) AddActivity(c *gin.Context) {
	identity := identityFromContext(c)

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid day number")
		return
	}

	var input services.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := tc.tripService.AddActivity(c.Param("id"), day, input, identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Activity added successfully", gin.H{"trip": trip})
}
