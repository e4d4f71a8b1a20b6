package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoadCondition enum
type RoadCondition string

const (
	ConditionGood              RoadCondition = "GOOD"
	ConditionBad               RoadCondition = "BAD"
	ConditionVeryBad           RoadCondition = "VERY_BAD"
	ConditionDangerous         RoadCondition = "DANGEROUS"
	ConditionUnderConstruction RoadCondition = "UNDER_CONSTRUCTION"
	ConditionFlooded           RoadCondition = "FLOODED"
	ConditionAccident          RoadCondition = "ACCIDENT"
)

// ValidRoadCondition reports whether c is one of the known conditions.
func ValidRoadCondition(c string) bool {
	switch RoadCondition(c) {
	case ConditionGood, ConditionBad, ConditionVeryBad, ConditionDangerous,
		ConditionUnderConstruction, ConditionFlooded, ConditionAccident:
		return true
	}
	return false
}

// ReportStatus enum
type ReportStatus string

const (
	ReportActive   ReportStatus = "ACTIVE"
	ReportResolved ReportStatus = "RESOLVED"
)

// RoadReport is a citizen-submitted road condition report.
type RoadReport struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedBy    primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	ReporterName string             `bson:"reporterName" json:"reporterName"`
	FromPlace    string             `bson:"fromPlace" json:"fromPlace"`
	ToPlace      string             `bson:"toPlace" json:"toPlace"`
	District     string             `bson:"district" json:"district"`
	DistrictNorm string             `bson:"districtNorm" json:"-"`
	State        string             `bson:"state" json:"state"`
	Condition    RoadCondition      `bson:"condition" json:"condition"`
	Landmark     string             `bson:"landmark,omitempty" json:"landmark,omitempty"`
	Latitude     *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	ImageURL     *string            `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Status       ReportStatus       `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CanResolve reports whether resolving the report would change it. A report
// that is already RESOLVED stays RESOLVED; there is no transition back to
// ACTIVE.
func (r *RoadReport) CanResolve() bool {
	return r.Status == ReportActive
}
