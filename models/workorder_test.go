package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanAdvanceWorkOrder(t *testing.T) {
	cases := []struct {
		from    WorkOrderStatus
		to      WorkOrderStatus
		allowed bool
	}{
		{OrderAssigned, OrderAccepted, true},
		{OrderAssigned, OrderRejected, true},
		{OrderAccepted, OrderInProgress, true},
		{OrderAccepted, OrderRejected, true},
		{OrderInProgress, OrderCompleted, true},
		{OrderAssigned, OrderInProgress, false},
		{OrderAssigned, OrderCompleted, false},
		{OrderAccepted, OrderAssigned, false},
		{OrderInProgress, OrderAccepted, false},
		{OrderInProgress, OrderRejected, false},
		{OrderCompleted, OrderInProgress, false},
		{OrderCompleted, OrderAssigned, false},
		{OrderRejected, OrderAssigned, false},
		{OrderRejected, OrderAccepted, false},
		{OrderAssigned, OrderAssigned, false},
	}

	for _, tc := range cases {
		if got := CanAdvanceWorkOrder(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanAdvanceWorkOrder(%s, %s) = %v, expected %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestWorkOrderOwnedBy(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	order := WorkOrder{MLAID: owner}

	if !order.OwnedBy(owner) {
		t.Error("assigning MLA should own the order")
	}
	if order.OwnedBy(other) {
		t.Error("a different MLA must not own the order")
	}
}

func TestTimestampFieldFor(t *testing.T) {
	cases := []struct {
		status   WorkOrderStatus
		expected string
	}{
		{OrderAccepted, "acceptedAt"},
		{OrderInProgress, "startedAt"},
		{OrderCompleted, "completedAt"},
		{OrderRejected, "rejectedAt"},
		{OrderAssigned, ""},
	}

	for _, tc := range cases {
		if got := TimestampFieldFor(tc.status); got != tc.expected {
			t.Errorf("TimestampFieldFor(%s) = %q, expected %q", tc.status, got, tc.expected)
		}
	}
}
