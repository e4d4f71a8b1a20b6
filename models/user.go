package models

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleMLA     Role = "mla"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleCitizen, RoleMLA, RoleAdmin:
		return true
	}
	return false
}

// User is the profile document: one per identity.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password,omitempty" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	District     string             `bson:"district" json:"district"`
	DistrictNorm string             `bson:"districtNorm" json:"-"`
	State        string             `bson:"state" json:"state"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// NormalizeDistrict canonicalizes a district value for matching. Districts
// are stored verbatim for display and normalized at write time so lookups
// never depend on the casing a reporter happened to type.
func NormalizeDistrict(district string) string {
	return strings.ToLower(strings.TrimSpace(district))
}

// EnsureUserIndexes creates the unique email index and the
// (role, districtNorm) index the fan-out lookup filters on.
func EnsureUserIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}, {Key: "districtNorm", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
