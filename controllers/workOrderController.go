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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateWorkOrder lets an MLA assign a road report to a department
func CreateWorkOrder(c *gin.Context) {
	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Department   string `json:"department" binding:"required,max=100"`
		RoadReportID string `json:"roadReportId" binding:"required"`
		Note         string `json:"note,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportID, err := primitive.ObjectIDFromHex(input.RoadReportID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var report models.RoadReport
	err = config.GetCollection("roadReports").FindOne(ctx, bson.M{"_id": reportID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		}
		return
	}

	order := models.WorkOrder{
		ID:                 primitive.NewObjectID(),
		Department:         input.Department,
		AssignedDepartment: input.Department,
		MLAID:              profile.ID,
		RoadReportID:       reportID,
		Status:             models.OrderAssigned,
		ProgressNotes:      []models.ProgressNote{},
		AssignedAt:         time.Now(),
	}
	if input.Note != "" {
		order.ProgressNotes = append(order.ProgressNotes, models.ProgressNote{
			Date: time.Now(),
			Note: input.Note,
		})
	}

	_, err = config.GetCollection("workOrders").InsertOne(ctx, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create work order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetMyWorkOrders retrieves work orders created by the authenticated MLA
func GetMyWorkOrders(c *gin.Context) {
	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "assignedAt", Value: -1}})

	cursor, err := config.GetCollection("workOrders").Find(ctx, bson.M{"mlaId": profile.ID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve work orders"})
		return
	}
	defer cursor.Close(ctx)

	var orders []models.WorkOrder
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode work orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetWorkOrder retrieves a work order by its ID
func GetWorkOrder(c *gin.Context) {
	idParam := c.Param("id")
	orderID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.WorkOrder
	err = config.GetCollection("workOrders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve work order"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// AdvanceWorkOrderStatus moves a work order forward through its workflow and
// stamps the matching timestamp. Completing a work order resolves the linked
// road report best-effort.
func AdvanceWorkOrderStatus(c *gin.Context) {
	idParam := c.Param("id")
	orderID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work order ID"})
		return
	}

	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidWorkOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	nextStatus := models.WorkOrderStatus(input.Status)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orderCollection := config.GetCollection("workOrders")

	var order models.WorkOrder
	err = orderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve work order"})
		}
		return
	}

	if !order.OwnedBy(profile.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to update this work order"})
		return
	}

	if !models.CanAdvanceWorkOrder(order.Status, nextStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
		return
	}

	now := time.Now()
	update := bson.M{"status": nextStatus}
	if field := models.TimestampFieldFor(nextStatus); field != "" {
		update[field] = now
	}

	updateDoc := bson.M{"$set": update}
	if input.Note != "" {
		updateDoc["$push"] = bson.M{"progressNotes": models.ProgressNote{Date: now, Note: input.Note}}
	}

	_, err = orderCollection.UpdateOne(ctx, bson.M{"_id": orderID}, updateDoc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update work order"})
		return
	}

	if nextStatus == models.OrderCompleted {
		_, err = config.GetCollection("roadReports").UpdateOne(ctx,
			bson.M{"_id": order.RoadReportID, "status": models.ReportActive},
			bson.M{"$set": bson.M{"status": models.ReportResolved, "updatedAt": now}},
		)
		if err != nil {
			logrus.Errorf("Failed to resolve report %s for completed work order %s: %v",
				order.RoadReportID.Hex(), orderID.Hex(), err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Work order updated successfully", "status": nextStatus})
}

// AddProgressNote appends a dated note to a work order's log
func AddProgressNote(c *gin.Context) {
	idParam := c.Param("id")
	orderID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work order ID"})
		return
	}

	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Note string `json:"note" binding:"required,max=1000"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orderCollection := config.GetCollection("workOrders")

	var order models.WorkOrder
	err = orderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve work order"})
		}
		return
	}

	if !order.OwnedBy(profile.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to update this work order"})
		return
	}

	_, err = orderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$push": bson.M{"progressNotes": models.ProgressNote{Date: time.Now(), Note: input.Note}}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add progress note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress note added"})
}
