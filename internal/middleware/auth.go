package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sweetshop/internal/models"
	"sweetshop/internal/services"
)

const (
	SubjectContextKey = "subject_id"
	RoleContextKey    = "role"
)

// Auth gates a route group behind a bearer token. On success the subject id
// and role land in the gin context; every failure mode is the same 401.
func Auth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization header missing"})
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header"})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		role := models.Role(claims.Role)
		if role == "" {
			role = models.RoleCustomer
		}

		c.Set(SubjectContextKey, claims.Sub)
		c.Set(RoleContextKey, role)
		c.Next()
	}
}

// GetSubject returns the authenticated subject id, or "" outside Auth.
func GetSubject(c *gin.Context) string {
	if v, exists := c.Get(SubjectContextKey); exists {
		return v.(string)
	}
	return ""
}

// GetRole returns the authenticated role, or "" outside Auth.
func GetRole(c *gin.Context) models.Role {
	if v, exists := c.Get(RoleContextKey); exists {
		return v.(models.Role)
	}
	return ""
}
