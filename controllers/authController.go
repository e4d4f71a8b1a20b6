package controllers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"fixmydistrict-be/config"
	"fixmydistrict-be/models"
	"fixmydistrict-be/services"
	authUtils "fixmydistrict-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterUser handles user registration. Admin accounts are provisioned out
// of band; self-registration only offers citizen and mla.
func RegisterUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role" binding:"required"`
		District string `json:"district" binding:"required,max=100"`
		State    string `json:"state" binding:"required,max=100"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Role != string(models.RoleCitizen) && input.Role != string(models.RoleMLA) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		logrus.Errorf("Error checking existing user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Password:     input.Password,
		Role:         models.Role(input.Role),
		District:     input.District,
		DistrictNorm: models.NormalizeDistrict(input.District),
		State:        input.State,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := user.HashPassword(); err != nil {
		logrus.Errorf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	result, err := userCollection.InsertOne(ctx, user)
	if err != nil {
		logrus.Errorf("Error inserting user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        result.InsertedID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"district":  user.District,
		"state":     user.State,
		"createdAt": user.CreatedAt,
	})
}

// loginErrorResponse classifies a profile-resolution failure during login.
// Only a missing profile means bad credentials; duplicates and store
// failures are server errors, never a silent 401.
func loginErrorResponse(err error) (int, gin.H) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		return http.StatusUnauthorized, gin.H{"error": "Invalid credentials"}
	case errors.Is(err, services.ErrDuplicateProfile):
		return http.StatusInternalServerError, gin.H{"error": "Profile data integrity error"}
	default:
		return http.StatusInternalServerError, gin.H{"error": "Something went wrong"}
	}
}

// LoginUser handles user login
func LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := services.ResolveProfile(ctx, userCollection, bson.M{"email": input.Email})
	if err != nil {
		status, body := loginErrorResponse(err)
		if status == http.StatusInternalServerError {
			logrus.Errorf("Login for %s: %v", input.Email, err)
		}
		c.JSON(status, body)
		return
	}

	if !user.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := authUtils.GenerateAndSetToken(user.ID.Hex())
	if err != nil {
		logrus.Errorf("Error generating token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	// For production, don't set domain to allow cross-origin cookies
	if environment == "production" {
		domain = ""
	}

	cookie := &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		MaxAge:   3600 * 72,
		Path:     "/",
		Domain:   domain,
		Secure:   environment == "production",
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	}
	http.SetCookie(c.Writer, cookie)

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"district":  user.District,
		"state":     user.State,
		"createdAt": user.CreatedAt,
	})
}

// GetMe retrieves the authenticated user's profile
func GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := services.ResolveProfile(ctx, userCollection, bson.M{"_id": objectID})
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logrus.Errorf("Error resolving profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// LogoutUser handles user logout by clearing the auth_token cookie
func LogoutUser(c *gin.Context) {
	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	c.SetCookie("auth_token", "", -1, "/", domain, environment == "production", true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
