package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HelpStatus enum
type HelpStatus string

const (
	HelpPending      HelpStatus = "PENDING"
	HelpAcknowledged HelpStatus = "ACKNOWLEDGED"
	HelpInProgress   HelpStatus = "IN_PROGRESS"
	HelpResolved     HelpStatus = "RESOLVED"
	HelpRejected     HelpStatus = "REJECTED"
)

// helpStatusRank orders the workflow. REJECTED shares the terminal rank with
// RESOLVED: both end the request and neither can be left.
var helpStatusRank = map[HelpStatus]int{
	HelpPending:      0,
	HelpAcknowledged: 1,
	HelpInProgress:   2,
	HelpResolved:     3,
	HelpRejected:     3,
}

// ValidHelpStatus reports whether s is one of the known statuses.
func ValidHelpStatus(s string) bool {
	_, ok := helpStatusRank[HelpStatus(s)]
	return ok
}

// CanAdvanceHelpStatus reports whether a request may move from to next.
// Transitions only move forward; RESOLVED and REJECTED are terminal.
func CanAdvanceHelpStatus(from, to HelpStatus) bool {
	fromRank, ok := helpStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := helpStatusRank[to]
	if !ok {
		return false
	}
	if from == HelpResolved || from == HelpRejected {
		return false
	}
	return toRank > fromRank
}

// HelpRequest is a community help request scoped to a city.
type HelpRequest struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedBy          primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	RequesterName      string             `bson:"requesterName" json:"requesterName"`
	RequesterEmail     string             `bson:"requesterEmail" json:"requesterEmail"`
	RequesterPhone     string             `bson:"requesterPhone" json:"requesterPhone"`
	HelpType           string             `bson:"helpType" json:"helpType"`
	Description        string             `bson:"description" json:"description"`
	City               string             `bson:"city" json:"city"`
	CityNorm           string             `bson:"cityNorm" json:"-"`
	AffectedPopulation int                `bson:"affectedPopulation" json:"affectedPopulation"`
	CommunityImpact    string             `bson:"communityImpact" json:"communityImpact"`
	Latitude           *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude          *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Status             HelpStatus         `bson:"status" json:"status"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HelpRequestInput carries the fields a requester submits. The community
// scope rules (at least 10 people affected, an impact statement of at least
// 20 characters) are checked here, before anything touches the store.
type HelpRequestInput struct {
	RequesterName      string   `json:"requesterName" validate:"required,max=100"`
	RequesterEmail     string   `json:"requesterEmail" validate:"required,email"`
	RequesterPhone     string   `json:"requesterPhone" validate:"required,max=20"`
	HelpType           string   `json:"helpType" validate:"required,max=50"`
	Description        string   `json:"description" validate:"required,max=2000"`
	City               string   `json:"city" validate:"required,max=100"`
	AffectedPopulation int      `json:"affectedPopulation" validate:"min=10"`
	CommunityImpact    string   `json:"communityImpact" validate:"required,min=20"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
}

var helpRequestValidate = validator.New()

// Validate applies the community-scope rules.
func (in *HelpRequestInput) Validate() error {
	return helpRequestValidate.Struct(in)
}
