package middleware

import (
	"net/http"
	"strings"

	"branch_pos_backend/internal/models"
	"branch_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SessionContextKey is the gin context key the operator's SessionContext is
// stored under.
const SessionContextKey = "sessionContext"

// AuthMiddleware creates a Gin middleware for JWT authentication. It builds
// the operator's SessionContext from the token claims and stores it in the
// request context for downstream handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(SessionContextKey, models.SessionContext{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
			BranchID: claims.BranchID,
		})

		c.Next()
	}
}

// GetSession retrieves the SessionContext placed by AuthMiddleware.
func GetSession(c *gin.Context) (models.SessionContext, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return models.SessionContext{}, false
	}
	sess, ok := value.(models.SessionContext)
	return sess, ok
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the operator's role is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Session not found. Ensure AuthMiddleware runs first."})
			c.Abort()
			return
		}

		allowed := false
		for _, r := range allowedRoles {
			if strings.EqualFold(sess.Role, r) {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource. Required roles: " + strings.Join(allowedRoles, ", ")})
			c.Abort()
			return
		}

		c.Next()
	}
}
