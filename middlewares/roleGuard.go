package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fixmydistrict-be/config"
	"fixmydistrict-be/models"
	"fixmydistrict-be/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuardDecision is the outcome of evaluating a guarded route.
type GuardDecision int

const (
	GuardUnauthenticated GuardDecision = iota
	GuardWrongRole
	GuardAuthorized
)

// Decide is the guard: a pure function of the resolved identity, the resolved
// profile, and the roles the route allows. No identity or no profile means
// unauthenticated; a profile whose role is not allowed means wrong role.
// It is evaluated fresh on every request.
func Decide(hasIdentity bool, profile *models.User, allowed []models.Role) GuardDecision {
	if !hasIdentity || profile == nil {
		return GuardUnauthenticated
	}
	for _, role := range allowed {
		if profile.Role == role {
			return GuardAuthorized
		}
	}
	return GuardWrongRole
}

// RoleHome returns the canonical landing path for a role.
func RoleHome(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/admin/dashboard"
	case models.RoleMLA:
		return "/mla/dashboard"
	default:
		return "/dashboard"
	}
}

// RequireRoles resolves the caller's profile and gates the route on it.
// Runs after AuthMiddleware. The resolved profile is stored in the context
// under "profile" so handlers don't re-fetch it.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, hasIdentity := c.Get("user_id")

		var profile *models.User
		if hasIdentity {
			userID, ok := userIDVal.(string)
			if !ok || userID == "" {
				hasIdentity = false
			} else {
				objectID, err := primitive.ObjectIDFromHex(userID)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
					c.Abort()
					return
				}

				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				profile, err = services.ResolveProfile(ctx, config.GetCollection("users"), bson.M{"_id": objectID})
				if err != nil {
					switch {
					case errors.Is(err, services.ErrProfileNotFound):
						// Not registered yet: treated as unauthenticated.
					case errors.Is(err, services.ErrDuplicateProfile):
						logrus.Errorf("Profile resolution for user %s: %v", userID, err)
						c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile data integrity error"})
						c.Abort()
						return
					default:
						logrus.Errorf("Profile resolution for user %s: %v", userID, err)
						c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
						c.Abort()
						return
					}
				}
			}
		}

		switch Decide(hasIdentity, profile, allowed) {
		case GuardUnauthenticated:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated", "redirect": "/login"})
			c.Abort()
		case GuardWrongRole:
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied for role", "redirect": RoleHome(profile.Role)})
			c.Abort()
		case GuardAuthorized:
			c.Set("profile", profile)
			c.Next()
		}
	}
}

// ProfileFromContext returns the profile RequireRoles resolved.
func ProfileFromContext(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get("profile")
	if !exists {
		return nil, false
	}
	profile, ok := val.(*models.User)
	return profile, ok
}
