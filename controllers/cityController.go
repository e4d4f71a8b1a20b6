package controllers

import (
	"net/http"

	"fixmydistrict-be/services"

	"github.com/gin-gonic/gin"
)

// GetSelectedCity returns the user's persisted locality selection, or an
// empty string when none has been chosen yet.
func GetSelectedCity(store services.CityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID, ok := userIDVal.(string)
		if !ok || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		city, err := store.GetCity(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read city selection"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"city": city})
	}
}

// UpdateSelectedCity overwrites the user's locality selection synchronously.
// No validation against a fixed locality list happens at this layer.
func UpdateSelectedCity(store services.CityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID, ok := userIDVal.(string)
		if !ok || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var input struct {
			City string `json:"city" binding:"required,max=100"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := store.SetCity(c.Request.Context(), userID, input.City); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save city selection"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"city": input.City})
	}
}
