package controllers

import (
	"context"
	"net/http"
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

// RespondToHelpRequest stores an MLA's reply and notifies the requester.
func RespondToHelpRequest(c *gin.Context) {
	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	idParam := c.Param("id")
	requestID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid help request ID"})
		return
	}

	var input struct {
		Message string `json:"message" binding:"required,max=2000"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	response := models.MLAHelpResponse{
		ID:            primitive.NewObjectID(),
		HelpRequestID: requestID,
		MLAID:         profile.ID,
		MLAName:       profile.Name,
		Message:       input.Message,
		CreatedAt:     time.Now(),
	}

	_, err = config.GetCollection("mlaHelpResponses").InsertOne(ctx, response)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create response"})
		return
	}

	// Best-effort notification to the requester.
	reportNotifier().NotifyUser(ctx, request.CreatedBy, services.FanOutEvent{
		District:     request.City,
		Type:         models.NotifyMLAResponse,
		Title:        "Response to your help request",
		Message:      input.Message,
		ReportID:     requestID,
		ReporterName: profile.Name,
	})

	c.JSON(http.StatusCreated, response)
}

// GetHelpRequestResponses lists the responses to a help request, oldest first
func GetHelpRequestResponses(c *gin.Context) {
	idParam := c.Param("id")
	requestID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid help request ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := config.GetCollection("mlaHelpResponses").Find(ctx, bson.M{"helpRequestId": requestID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve responses"})
		return
	}
	defer cursor.Close(ctx)

	var responses []models.MLAHelpResponse
	if err := cursor.All(ctx, &responses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode responses"})
		return
	}

	c.JSON(http.StatusOK, responses)
}
