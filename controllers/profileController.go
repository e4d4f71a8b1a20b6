package controllers

import (
	"context"
	"net/http"
	"time"

	"fixmydistrict-be/config"
	"fixmydistrict-be/middlewares"
	"fixmydistrict-be/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetProfile returns the profile the role guard already resolved.
func GetProfile(c *gin.Context) {
	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile lets the owner change name, district, and state. Role is not
// editable here.
func UpdateProfile(c *gin.Context) {
	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Name     *string `json:"name,omitempty"`
		District *string `json:"district,omitempty"`
		State    *string `json:"state,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.District != nil {
		update["district"] = *input.District
		update["districtNorm"] = models.NormalizeDistrict(*input.District)
	}
	if input.State != nil {
		update["state"] = *input.State
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := userCollection.UpdateOne(ctx, bson.M{"_id": profile.ID}, bson.M{"$set": update})
	if err != nil {
		logrus.Errorf("Error updating profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// SetUserRole lets an admin change any user's role.
func SetUserRole(c *gin.Context) {
	idParam := c.Param("id")
	targetID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := userCollection.UpdateOne(ctx,
		bson.M{"_id": targetID},
		bson.M{"$set": bson.M{"role": input.Role, "updatedAt": time.Now()}},
	)
	if err != nil {
		logrus.Errorf("Error updating role: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}
