package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkOrderStatus enum
type WorkOrderStatus string

const (
	OrderAssigned   WorkOrderStatus = "assigned"
	OrderAccepted   WorkOrderStatus = "accepted"
	OrderInProgress WorkOrderStatus = "in_progress"
	OrderCompleted  WorkOrderStatus = "completed"
	OrderRejected   WorkOrderStatus = "rejected"
)

// workOrderTransitions lists the permitted forward moves. completed and
// rejected are terminal.
var workOrderTransitions = map[WorkOrderStatus][]WorkOrderStatus{
	OrderAssigned:   {OrderAccepted, OrderRejected},
	OrderAccepted:   {OrderInProgress, OrderRejected},
	OrderInProgress: {OrderCompleted},
}

// ValidWorkOrderStatus reports whether s is one of the known statuses.
func ValidWorkOrderStatus(s string) bool {
	switch WorkOrderStatus(s) {
	case OrderAssigned, OrderAccepted, OrderInProgress, OrderCompleted, OrderRejected:
		return true
	}
	return false
}

// CanAdvanceWorkOrder reports whether a work order may move from to next.
func CanAdvanceWorkOrder(from, to WorkOrderStatus) bool {
	for _, allowed := range workOrderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ProgressNote is one dated entry in a work order's append-only log.
type ProgressNote struct {
	Date time.Time `bson:"date" json:"date"`
	Note string    `bson:"note" json:"note"`
}

// WorkOrder assigns a road report to a department for repair.
type WorkOrder struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Department         string             `bson:"department" json:"department"`
	AssignedDepartment string             `bson:"assignedDepartment" json:"assignedDepartment"`
	MLAID              primitive.ObjectID `bson:"mlaId" json:"mlaId"`
	RoadReportID       primitive.ObjectID `bson:"roadReportId" json:"roadReportId"`
	Status             WorkOrderStatus    `bson:"status" json:"status"`
	ProgressNotes      []ProgressNote     `bson:"progressNotes" json:"progressNotes"`
	AssignedAt         time.Time          `bson:"assignedAt" json:"assignedAt"`
	AcceptedAt         *time.Time         `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
	StartedAt          *time.Time         `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt        *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	RejectedAt         *time.Time         `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
}

// OwnedBy reports whether the order was created by the given MLA. Only the
// assigning MLA may advance or annotate it.
func (w *WorkOrder) OwnedBy(userID primitive.ObjectID) bool {
	return w.MLAID == userID
}

// TimestampFieldFor maps a status to the bson field stamped when the order
// enters that status. Empty for assigned, which is stamped at creation.
func TimestampFieldFor(status WorkOrderStatus) string {
	switch status {
	case OrderAccepted:
		return "acceptedAt"
	case OrderInProgress:
		return "startedAt"
	case OrderCompleted:
		return "completedAt"
	case OrderRejected:
		return "rejectedAt"
	}
	return ""
}
