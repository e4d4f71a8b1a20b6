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

// reportNotifier wires the fan-out service over the live collections.
func reportNotifier() *services.Notifier {
	return services.NewNotifier(
		&services.MongoMLAFinder{Users: config.GetCollection("users")},
		&services.MongoNotificationCreator{Notifications: config.GetCollection("notifications")},
	)
}

// CreateRoadReport handles the creation of a new road report
func CreateRoadReport(c *gin.Context) {
	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		FromPlace string   `json:"fromPlace" binding:"required,max=200"`
		ToPlace   string   `json:"toPlace" binding:"required,max=200"`
		District  string   `json:"district" binding:"required,max=100"`
		State     string   `json:"state" binding:"required,max=100"`
		Condition string   `json:"condition" binding:"required"`
		Landmark  string   `json:"landmark,omitempty"`
		ImageURL  *string  `json:"imageUrl,omitempty"`
		Latitude  *float64 `json:"latitude,omitempty"`
		Longitude *float64 `json:"longitude,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRoadCondition(input.Condition) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid condition"})
		return
	}

	report := models.RoadReport{
		ID:           primitive.NewObjectID(),
		CreatedBy:    profile.ID,
		ReporterName: profile.Name,
		FromPlace:    input.FromPlace,
		ToPlace:      input.ToPlace,
		District:     input.District,
		DistrictNorm: models.NormalizeDistrict(input.District),
		State:        input.State,
		Condition:    models.RoadCondition(input.Condition),
		Landmark:     input.Landmark,
		ImageURL:     input.ImageURL,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Status:       models.ReportActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := config.GetCollection("roadReports").InsertOne(ctx, report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	// Best-effort: fan-out failure never fails the create.
	_ = reportNotifier().NotifyDistrictMLAs(ctx, services.FanOutEvent{
		District:     report.District,
		Type:         models.NotifyRoadReport,
		Title:        "New road report in " + report.District,
		Message:      report.FromPlace + " to " + report.ToPlace + ": " + string(report.Condition),
		ReportID:     report.ID,
		ReporterName: report.ReporterName,
	})

	c.JSON(http.StatusCreated, report)
}

// GetRoadReports retrieves reports scoped to a district with filtering,
// pagination, and newest-first ordering.
func GetRoadReports(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	district := c.Query("district")
	condition := c.Query("condition")
	status := c.Query("status")
	sort := c.DefaultQuery("sort", "newest")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{}

	if district != "" {
		filter["districtNorm"] = models.NormalizeDistrict(district)
	}

	if condition != "" && condition != "all" {
		filter["condition"] = condition
	}

	if status != "" && status != "all" {
		filter["status"] = status
	}

	skip := (page - 1) * limit

	var sortOptions bson.D
	switch sort {
	case "oldest":
		sortOptions = bson.D{{Key: "createdAt", Value: 1}}
	case "newest":
		fallthrough
	default:
		sortOptions = bson.D{{Key: "createdAt", Value: -1}}
	}

	reportCollection := config.GetCollection("roadReports")

	totalCount, err := reportCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count reports"})
		return
	}

	findOptions := options.Find().
		SetSort(sortOptions).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := reportCollection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reports"})
		return
	}
	defer cursor.Close(ctx)

	var reports []models.RoadReport
	if err := cursor.All(ctx, &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reports"})
		return
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"reports":      reports,
		"totalReports": totalCount,
		"totalPages":   totalPages,
		"currentPage":  page,
	})
}

// GetMyRoadReports retrieves all reports created by the authenticated user
func GetMyRoadReports(c *gin.Context) {
	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := config.GetCollection("roadReports").Find(ctx, bson.M{"createdBy": profile.ID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reports"})
		return
	}
	defer cursor.Close(ctx)

	var reports []models.RoadReport
	if err := cursor.All(ctx, &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reports"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetRoadReport retrieves a report by its ID
func GetRoadReport(c *gin.Context) {
	idParam := c.Param("id")
	reportID, err := primitive.ObjectIDFromHex(idParam)
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

	c.JSON(http.StatusOK, report)
}

// ResolveRoadReport marks a report RESOLVED. Only the owner may resolve, and
// a report that is already RESOLVED stays that way: repeating the action is a
// success no-op and there is no path back to ACTIVE.
func ResolveRoadReport(c *gin.Context) {
	idParam := c.Param("id")
	reportID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	profile, ok := middlewares.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reportCollection := config.GetCollection("roadReports")

	var report models.RoadReport
	err = reportCollection.FindOne(ctx, bson.M{"_id": reportID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		}
		return
	}

	if report.CreatedBy != profile.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to resolve this report"})
		return
	}

	if !report.CanResolve() {
		c.JSON(http.StatusOK, gin.H{"message": "Report already resolved", "status": report.Status})
		return
	}

	_, err = reportCollection.UpdateOne(ctx,
		bson.M{"_id": reportID},
		bson.M{"$set": bson.M{"status": models.ReportResolved, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report resolved successfully", "status": models.ReportResolved})
}

// RecentRoadReports returns the most recent reports that have coordinates,
// projected down to what a map view needs.
func RecentRoadReports(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	limit := 19

	filter := bson.M{
		"latitude":  bson.M{"$exists": true, "$ne": nil},
		"longitude": bson.M{"$exists": true, "$ne": nil},
	}

	projection := bson.M{
		"_id":       1,
		"fromPlace": 1,
		"toPlace":   1,
		"latitude":  1,
		"longitude": 1,
		"district":  1,
		"condition": 1,
		"createdAt": 1,
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(projection)

	cursor, err := config.GetCollection("roadReports").Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent reports"})
		return
	}
	defer cursor.Close(ctx)

	type reportProjection struct {
		ID        primitive.ObjectID `bson:"_id" json:"id"`
		FromPlace string             `bson:"fromPlace" json:"fromPlace"`
		ToPlace   string             `bson:"toPlace" json:"toPlace"`
		Latitude  *float64           `bson:"latitude" json:"latitude"`
		Longitude *float64           `bson:"longitude" json:"longitude"`
		District  string             `bson:"district" json:"district"`
		Condition string             `bson:"condition" json:"condition"`
		CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	}

	var reports []reportProjection
	if err := cursor.All(ctx, &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode recent reports"})
		return
	}

	type reportResponse struct {
		ID        string    `json:"id"`
		FromPlace string    `json:"fromPlace"`
		ToPlace   string    `json:"toPlace"`
		Latitude  float64   `json:"latitude"`
		Longitude float64   `json:"longitude"`
		District  string    `json:"district"`
		Condition string    `json:"condition"`
		CreatedAt time.Time `json:"createdAt"`
	}

	var response []reportResponse
	for _, report := range reports {
		if report.Latitude != nil && report.Longitude != nil {
			response = append(response, reportResponse{
				ID:        report.ID.Hex(),
				FromPlace: report.FromPlace,
				ToPlace:   report.ToPlace,
				Latitude:  *report.Latitude,
				Longitude: *report.Longitude,
				District:  report.District,
				Condition: report.Condition,
				CreatedAt: report.CreatedAt,
			})
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetReportAnalytics returns analytical data about road reports for the
// admin dashboard.
func GetReportAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reportCollection := config.GetCollection("roadReports")

	conditionPipeline := []bson.M{
		{
			"$group": bson.M{
				"_id":   "$condition",
				"count": bson.M{"$sum": 1},
			},
		},
		{
			"$project": bson.M{
				"name":  "$_id",
				"value": "$count",
				"_id":   0,
			},
		},
	}

	conditionCursor, err := reportCollection.Aggregate(ctx, conditionPipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get condition analytics"})
		return
	}
	defer conditionCursor.Close(ctx)

	var reportsByCondition []bson.M
	if err := conditionCursor.All(ctx, &reportsByCondition); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode condition analytics"})
		return
	}

	var last7Days []gin.H
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

		nextDate := date.AddDate(0, 0, 1)

		count, err := reportCollection.CountDocuments(ctx, bson.M{
			"createdAt": bson.M{
				"$gte": date,
				"$lt":  nextDate,
			},
		})
		if err != nil {
			count = 0
		}

		last7Days = append(last7Days, gin.H{
			"date":  date.Format("2006-01-02"),
			"count": count,
		})
	}

	totalReports, err := reportCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		totalReports = 0
	}

	activeReports, err := reportCollection.CountDocuments(ctx, bson.M{"status": models.ReportActive})
	if err != nil {
		activeReports = 0
	}

	totalHelpRequests, err := config.GetCollection("helpRequests").CountDocuments(ctx, bson.M{})
	if err != nil {
		totalHelpRequests = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"reportsByCondition": reportsByCondition,
		"last7Days":          last7Days,
		"totalReports":       totalReports,
		"activeReports":      activeReports,
		"totalHelpRequests":  totalHelpRequests,
	})
}
