package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"fixmydistrict-be/config"
	"fixmydistrict-be/middlewares"
	"fixmydistrict-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetMyNotifications retrieves the authenticated user's notifications,
// newest first.
func GetMyNotifications(c *gin.Context) {
	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := config.GetCollection("notifications").Find(ctx, bson.M{"recipient": profile.ID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount returns how many of the user's notifications are unread
func GetUnreadCount(c *gin.Context) {
	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := config.GetCollection("notifications").CountDocuments(ctx, bson.M{
		"recipient": profile.ID,
		"isRead":    false,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

// MarkNotificationRead flips a notification's isRead flag. Only the
// recipient may mark it, and marking an already-read notification is a
// success no-op.
func MarkNotificationRead(c *gin.Context) {
	idParam := c.Param("id")
	notificationID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notificationCollection := config.GetCollection("notifications")

	var notification models.Notification
	err = notificationCollection.FindOne(ctx, bson.M{"_id": notificationID}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notification"})
		}
		return
	}

	if notification.Recipient != profile.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to update this notification"})
		return
	}

	if !notification.IsRead {
		_, err = notificationCollection.UpdateOne(ctx,
			bson.M{"_id": notificationID},
			bson.M{"$set": bson.M{"isRead": true}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
