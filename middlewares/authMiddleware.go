package middlewares

import (
	"net/http"
	"strings"

	authUtils "fixmydistrict-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthMiddleware authenticates the request from the auth_token cookie or an
// Authorization bearer header and stores the user id in the context.
// Requests without a session get 401, never a render of guarded content.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if cookie, err := c.Cookie("auth_token"); err == nil {
			tokenString = cookie
		}
		if tokenString == "" {
			authHeader := c.Request.Header.Get("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided", "redirect": "/login"})
				c.Abort()
				return
			}
			tokenString = authHeader
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = authHeader[7:]
			}
		}

		userID, err := authUtils.ParseToken(tokenString)
		if err != nil {
			logrus.Debugf("Token validation failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token", "redirect": "/login"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
