package services

import (
	"context"
	"time"

	"fixmydistrict-be/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

const (
	// fanOutConcurrency bounds how many notification writes run at once.
	fanOutConcurrency = 8
	// fanOutCap is the hard ceiling on recipients per event. Matches beyond
	// the cap are skipped and logged rather than queued.
	fanOutCap = 200
)

// MLAFinder looks up the MLA profiles for a district.
type MLAFinder interface {
	FindMLAsByDistrict(ctx context.Context, district string) ([]models.User, error)
}

// NotificationCreator persists a single notification document.
type NotificationCreator interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// FanOutEvent describes one report worth announcing to a district's MLAs.
type FanOutEvent struct {
	District     string
	Type         models.NotificationType
	Title        string
	Message      string
	ReportID     primitive.ObjectID
	ReporterName string
}

// Notifier broadcasts report events to every MLA of the matching district.
// The broadcast is best-effort: individual write failures are logged and
// swallowed so one bad write never fails the originating report, and never
// cancels the sibling writes.
type Notifier struct {
	finder  MLAFinder
	creator NotificationCreator
}

func NewNotifier(finder MLAFinder, creator NotificationCreator) *Notifier {
	return &Notifier{finder: finder, creator: creator}
}

// NotifyDistrictMLAs creates one notification per MLA whose district matches
// the event's district, case-insensitively. Always returns nil once the
// recipient lookup succeeds.
func (n *Notifier) NotifyDistrictMLAs(ctx context.Context, event FanOutEvent) error {
	mlas, err := n.finder.FindMLAsByDistrict(ctx, event.District)
	if err != nil {
		return err
	}

	if len(mlas) > fanOutCap {
		logrus.Warnf("Fan-out for district %q matched %d MLAs, capping at %d", event.District, len(mlas), fanOutCap)
		mlas = mlas[:fanOutCap]
	}

	g := new(errgroup.Group)
	g.SetLimit(fanOutConcurrency)

	for _, mla := range mlas {
		recipient := mla.ID
		g.Go(func() error {
			notification := &models.Notification{
				Recipient:    recipient,
				Type:         event.Type,
				Title:        event.Title,
				Message:      event.Message,
				ReportID:     event.ReportID,
				District:     event.District,
				ReporterName: event.ReporterName,
				IsRead:       false,
				CreatedAt:    time.Now(),
			}
			if err := n.creator.CreateNotification(ctx, notification); err != nil {
				logrus.Errorf("Failed to notify MLA %s for report %s: %v", recipient.Hex(), event.ReportID.Hex(), err)
			}
			return nil
		})
	}

	_ = g.Wait()
	return nil
}

// NotifyUser creates a single notification for one recipient, best-effort.
func (n *Notifier) NotifyUser(ctx context.Context, recipient primitive.ObjectID, event FanOutEvent) {
	notification := &models.Notification{
		Recipient:    recipient,
		Type:         event.Type,
		Title:        event.Title,
		Message:      event.Message,
		ReportID:     event.ReportID,
		District:     event.District,
		ReporterName: event.ReporterName,
		IsRead:       false,
		CreatedAt:    time.Now(),
	}
	if err := n.creator.CreateNotification(ctx, notification); err != nil {
		logrus.Errorf("Failed to notify user %s for report %s: %v", recipient.Hex(), event.ReportID.Hex(), err)
	}
}

// MongoMLAFinder finds MLA profiles in the users collection. The filter runs
// server-side against the normalized district written at registration.
type MongoMLAFinder struct {
	Users *mongo.Collection
}

func (f *MongoMLAFinder) FindMLAsByDistrict(ctx context.Context, district string) ([]models.User, error) {
	filter := bson.M{
		"role":         models.RoleMLA,
		"districtNorm": models.NormalizeDistrict(district),
	}

	cursor, err := f.Users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var mlas []models.User
	if err := cursor.All(ctx, &mlas); err != nil {
		return nil, err
	}
	return mlas, nil
}

// MongoNotificationCreator inserts notification documents.
type MongoNotificationCreator struct {
	Notifications *mongo.Collection
}

func (c *MongoNotificationCreator) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	_, err := c.Notifications.InsertOne(ctx, n)
	return err
}
