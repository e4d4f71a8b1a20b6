package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationType enum
type NotificationType string

const (
	NotifyRoadReport  NotificationType = "ROAD_REPORT"
	NotifyHelpRequest NotificationType = "HELP_REQUEST"
	NotifyMLAResponse NotificationType = "MLA_RESPONSE"
	NotifyWorkOrder   NotificationType = "WORK_ORDER"
)

// Notification is addressed to a single recipient. The app only ever flips
// IsRead; notifications are never deleted.
type Notification struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Recipient    primitive.ObjectID `bson:"recipient" json:"recipient"`
	Type         NotificationType   `bson:"type" json:"type"`
	Title        string             `bson:"title" json:"title"`
	Message      string             `bson:"message" json:"message"`
	ReportID     primitive.ObjectID `bson:"reportId" json:"reportId"`
	District     string             `bson:"district" json:"district"`
	ReporterName string             `bson:"reporterName" json:"reporterName"`
	IsRead       bool               `bson:"isRead" json:"isRead"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// EnsureNotificationIndexes creates the (recipient, createdAt desc) index the
// per-user listing sorts on.
func EnsureNotificationIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "createdAt", Value: -1}},
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
