package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"fixmydistrict-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeFinder matches MLAs the way the Mongo finder does: against the
// normalized district written at registration.
type fakeFinder struct {
	mlas []models.User
}

func (f *fakeFinder) FindMLAsByDistrict(ctx context.Context, district string) ([]models.User, error) {
	norm := models.NormalizeDistrict(district)
	var matches []models.User
	for _, mla := range f.mlas {
		if mla.Role == models.RoleMLA && mla.DistrictNorm == norm {
			matches = append(matches, mla)
		}
	}
	return matches, nil
}

// fakeCreator records created notifications and can be told to fail for
// specific recipients.
type fakeCreator struct {
	mu      sync.Mutex
	created []*models.Notification
	failFor map[primitive.ObjectID]bool
}

func (c *fakeCreator) CreateNotification(ctx context.Context, n *models.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failFor[n.Recipient] {
		return errors.New("write failed")
	}
	c.created = append(c.created, n)
	return nil
}

func mlaIn(district string) models.User {
	return models.User{
		ID:           primitive.NewObjectID(),
		Role:         models.RoleMLA,
		District:     district,
		DistrictNorm: models.NormalizeDistrict(district),
	}
}

func TestFanOutMatchesDistrictCaseInsensitively(t *testing.T) {
	first := mlaIn("warangal")
	second := mlaIn("WARANGAL")
	other := mlaIn("Nizamabad")
	citizen := models.User{
		ID:           primitive.NewObjectID(),
		Role:         models.RoleCitizen,
		District:     "Warangal",
		DistrictNorm: "warangal",
	}

	for _, reportDistrict := range []string{"Warangal", "warangal", "WARANGAL", "  Warangal "} {
		creator := &fakeCreator{}
		notifier := NewNotifier(&fakeFinder{mlas: []models.User{first, second, other, citizen}}, creator)

		err := notifier.NotifyDistrictMLAs(context.Background(), FanOutEvent{
			District:     reportDistrict,
			Type:         models.NotifyRoadReport,
			Title:        "New road report",
			ReportID:     primitive.NewObjectID(),
			ReporterName: "Ravi",
		})
		if err != nil {
			t.Fatalf("district %q: unexpected error %v", reportDistrict, err)
		}

		if len(creator.created) != 2 {
			t.Fatalf("district %q: created %d notifications, expected 2", reportDistrict, len(creator.created))
		}
		recipients := map[primitive.ObjectID]bool{}
		for _, n := range creator.created {
			recipients[n.Recipient] = true
		}
		if !recipients[first.ID] || !recipients[second.ID] {
			t.Errorf("district %q: expected one notification per matching MLA, got recipients %v", reportDistrict, recipients)
		}
	}
}

func TestFanOutPartialFailureDoesNotCancelSiblings(t *testing.T) {
	var mlas []models.User
	for i := 0; i < 10; i++ {
		mlas = append(mlas, mlaIn("Warangal"))
	}

	creator := &fakeCreator{failFor: map[primitive.ObjectID]bool{mlas[3].ID: true}}
	notifier := NewNotifier(&fakeFinder{mlas: mlas}, creator)

	err := notifier.NotifyDistrictMLAs(context.Background(), FanOutEvent{
		District: "Warangal",
		Type:     models.NotifyRoadReport,
		ReportID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("fan-out must swallow per-recipient failures, got %v", err)
	}

	if len(creator.created) != 9 {
		t.Fatalf("created %d notifications, expected 9 despite one failure", len(creator.created))
	}
	for _, n := range creator.created {
		if n.Recipient == mlas[3].ID {
			t.Error("failed recipient should not appear among created notifications")
		}
	}
}

func TestFanOutCapsRecipients(t *testing.T) {
	var mlas []models.User
	for i := 0; i < fanOutCap+50; i++ {
		mlas = append(mlas, mlaIn("Warangal"))
	}

	creator := &fakeCreator{}
	notifier := NewNotifier(&fakeFinder{mlas: mlas}, creator)

	err := notifier.NotifyDistrictMLAs(context.Background(), FanOutEvent{
		District: "Warangal",
		Type:     models.NotifyHelpRequest,
		ReportID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(creator.created) != fanOutCap {
		t.Fatalf("created %d notifications, expected cap of %d", len(creator.created), fanOutCap)
	}
}

func TestFanOutNoMatchesCreatesNothing(t *testing.T) {
	creator := &fakeCreator{}
	notifier := NewNotifier(&fakeFinder{mlas: []models.User{mlaIn("Nizamabad")}}, creator)

	err := notifier.NotifyDistrictMLAs(context.Background(), FanOutEvent{
		District: "Warangal",
		Type:     models.NotifyRoadReport,
		ReportID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(creator.created) != 0 {
		t.Fatalf("created %d notifications, expected 0", len(creator.created))
	}
}

func TestFanOutPopulatesNotificationFields(t *testing.T) {
	mla := mlaIn("Warangal")
	creator := &fakeCreator{}
	notifier := NewNotifier(&fakeFinder{mlas: []models.User{mla}}, creator)

	reportID := primitive.NewObjectID()
	err := notifier.NotifyDistrictMLAs(context.Background(), FanOutEvent{
		District:     "Warangal",
		Type:         models.NotifyRoadReport,
		Title:        "New road report in Warangal",
		Message:      "NH163 to Kazipet: FLOODED",
		ReportID:     reportID,
		ReporterName: "Ravi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(creator.created) != 1 {
		t.Fatalf("created %d notifications, expected 1", len(creator.created))
	}

	n := creator.created[0]
	checks := []struct {
		field    string
		got, exp interface{}
	}{
		{"recipient", n.Recipient, mla.ID},
		{"type", n.Type, models.NotifyRoadReport},
		{"title", n.Title, "New road report in Warangal"},
		{"message", n.Message, "NH163 to Kazipet: FLOODED"},
		{"reportId", n.ReportID, reportID},
		{"district", n.District, "Warangal"},
		{"reporterName", n.ReporterName, "Ravi"},
		{"isRead", n.IsRead, false},
	}
	for _, c := range checks {
		if fmt.Sprint(c.got) != fmt.Sprint(c.exp) {
			t.Errorf("%s = %v, expected %v", c.field, c.got, c.exp)
		}
	}
	if n.CreatedAt.IsZero() {
		t.Error("createdAt should be set")
	}
}
