package services

import (
	"context"
	"errors"

	"fixmydistrict-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrProfileNotFound means the identity has no profile document yet and
	// the caller should treat the user as not registered.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrDuplicateProfile means more than one profile document matched one
	// identity. That is a data defect and is reported loudly instead of
	// silently picking the first match.
	ErrDuplicateProfile = errors.New("duplicate profile documents for identity")
)

// ResolveProfile fetches the profile document matching filter, enforcing the
// one-profile-per-identity invariant: zero matches is ErrProfileNotFound,
// more than one is ErrDuplicateProfile.
func ResolveProfile(ctx context.Context, users *mongo.Collection, filter bson.M) (*models.User, error) {
	cursor, err := users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []models.User
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, ErrProfileNotFound
	case 1:
		return &matches[0], nil
	default:
		return nil, ErrDuplicateProfile
	}
}
