package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"fixmydistrict-be/config"
	"fixmydistrict-be/middlewares"
	"fixmydistrict-be/models"
	"fixmydistrict-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateHelpRequest handles the creation of a new help request. The
// community-scope rules are checked before anything is persisted.
func CreateHelpRequest(c *gin.Context) {
	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.HelpRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request := models.HelpRequest{
		ID:                 primitive.NewObjectID(),
		CreatedBy:          profile.ID,
		RequesterName:      input.RequesterName,
		RequesterEmail:     input.RequesterEmail,
		RequesterPhone:     input.RequesterPhone,
		HelpType:           input.HelpType,
		Description:        input.Description,
		City:               input.City,
		CityNorm:           models.NormalizeDistrict(input.City),
		AffectedPopulation: input.AffectedPopulation,
		CommunityImpact:    input.CommunityImpact,
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		Status:             models.HelpPending,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := config.GetCollection("helpRequests").InsertOne(ctx, request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create help request"})
		return
	}

	// Best-effort: fan-out failure never fails the create.
	_ = reportNotifier().NotifyDistrictMLAs(ctx, services.FanOutEvent{
		District:     request.City,
		Type:         models.NotifyHelpRequest,
		Title:        "New help request in " + request.City,
		Message:      request.HelpType + ": " + request.Description,
		ReportID:     request.ID,
		ReporterName: request.RequesterName,
	})

	c.JSON(http.StatusCreated, request)
}

// GetHelpRequests retrieves help requests scoped to a city
func GetHelpRequests(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	city := c.Query("city")
	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{}

	if city != "" {
		filter["cityNorm"] = models.NormalizeDistrict(city)
	}

	if status != "" && status != "all" {
		filter["status"] = status
	}

	skip := (page - 1) * limit

	helpCollection := config.GetCollection("helpRequests")

	totalCount, err := helpCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count help requests"})
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := helpCollection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve help requests"})
		return
	}
	defer cursor.Close(ctx)

	var requests []models.HelpRequest
	if err := cursor.All(ctx, &requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode help requests"})
		return
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"helpRequests": requests,
		"totalCount":   totalCount,
		"totalPages":   totalPages,
		"currentPage":  page,
	})
}

// GetMyHelpRequests retrieves the authenticated user's help requests
func GetMyHelpRequests(c *gin.Context) {
	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := config.GetCollection("helpRequests").Find(ctx, bson.M{"createdBy": profile.ID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve help requests"})
		return
	}
	defer cursor.Close(ctx)

	var requests []models.HelpRequest
	if err := cursor.All(ctx, &requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode help requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GetHelpRequest retrieves a help request by its ID
func GetHelpRequest(c *gin.Context) {
	idParam := c.Param("id")
	requestID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid help request ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request models.HelpRequest
	err = config.GetCollection("helpRequests").FindOne(ctx, bson.M{"_id": requestID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Help request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve help request"})
		}
		return
	}

	c.JSON(http.StatusOK, request)
}

// AdvanceHelpRequestStatus moves a help request forward through its workflow.
// The requester may close their own request (RESOLVED); mla and admin may
// acknowledge, start, resolve, or reject. Transitions never move backward.
func AdvanceHelpRequestStatus(c *gin.Context) {
	idParam := c.Param("id")
	requestID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid help request ID"})
		return
	}

	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidHelpStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	nextStatus := models.HelpStatus(input.Status)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	helpCollection := config.GetCollection("helpRequests")

	var request models.HelpRequest
	err = helpCollection.FindOne(ctx, bson.M{"_id": requestID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Help request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve help request"})
		}
		return
	}

	isOfficial := profile.Role == models.RoleMLA || profile.Role == models.RoleAdmin
	isOwner := request.CreatedBy == profile.ID

	// Requesters may only close their own request; everything else is for
	// officials.
	if isOwner && !isOfficial {
		if nextStatus != models.HelpResolved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Requesters may only close their own request"})
			return
		}
	} else if !isOfficial {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to update this help request"})
		return
	}

	if !models.CanAdvanceHelpStatus(request.Status, nextStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
		return
	}

	_, err = helpCollection.UpdateOne(ctx,
		bson.M{"_id": requestID},
		bson.M{"$set": bson.M{"status": nextStatus, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update help request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Help request updated successfully", "status": nextStatus})
}
