package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/billed/internal/application/route"
	"github.com/garyjia/billed/internal/domain/entity"
)

const (
	sessionCookie  = "user"
	sessionMaxAge  = 12 * 60 * 60
	contextUserKey = "user"

	headerUserEmail = "X-User-Email"
	headerUserType  = "X-User-Type"
)

// setSession stores user in the session cookie as {"type","email"}
func setSession(c *gin.Context, user entity.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, string(raw), sessionMaxAge, "/", "", false, true)
	return nil
}

func clearSession(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

// readSession decodes the session cookie; an empty email is no session
func readSession(c *gin.Context) (entity.User, bool) {
	raw, err := c.Cookie(sessionCookie)
	if err != nil || raw == "" {
		return entity.User{}, false
	}

	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.Email == "" {
		return entity.User{}, false
	}
	if user.Type == "" {
		user.Type = entity.UserTypeEmployee
	}
	return user, true
}

// sessionMiddleware sends visitors without a session back to the login page
func sessionMiddleware(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := readSession(c)
		if !ok {
			logger.Warn("No session, redirecting to login", "path", c.Request.URL.Path)
			c.Redirect(http.StatusFound, route.Login)
			c.Abort()
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// identityMiddleware reads the caller identity of store API requests.
// The headers are trusted as sent, including X-User-Type: Admin, so the store API
// must only be reachable from a trusted network (the host UI and billctl).
// A missing type means Employee.
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader(headerUserEmail)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing " + headerUserEmail + " header",
			})
			return
		}

		userType := c.GetHeader(headerUserType)
		if userType == "" {
			userType = entity.UserTypeEmployee
		}
		c.Set(contextUserKey, entity.User{Type: userType, Email: email})
		c.Next()
	}
}

// currentUser returns the user set by the session or identity middleware
func currentUser(c *gin.Context) entity.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(entity.User); ok {
			return user
		}
	}
	return entity.User{}
}
