package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MLAHelpResponse records an MLA's reply to a help request.
type MLAHelpResponse struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HelpRequestID primitive.ObjectID `bson:"helpRequestId" json:"helpRequestId"`
	MLAID         primitive.ObjectID `bson:"mlaId" json:"mlaId"`
	MLAName       string             `bson:"mlaName" json:"mlaName"`
	Message       string             `bson:"message" json:"message"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
