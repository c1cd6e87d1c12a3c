package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/khoahotran/connecthub/pkg/apperror"
	"github.com/khoahotran/connecthub/pkg/auth"
	"github.com/khoahotran/connecthub/pkg/logger"
)

const (
	GinContextKeyViewerID = "viewerID"
)

// AuthMiddleware resolves the already-issued viewer identity from the
// bearer token. Issuing tokens is the identity service's business; every
// visibility decision downstream hangs off the viewer_id set here.
func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(GinContextKeyViewerID, claims.ViewerID)

		c.Next()
	}
}

// ErrorMiddleware turns errors attached with c.Error into responses using
// the apperror taxonomy. Anything unrecognized is a plain 500.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status := apperror.ToHTTPStatus(appErr)
			if status >= http.StatusInternalServerError {
				log.Error("request failed", appErr)
			}
			c.JSON(status, appErr.ToJSON())
			return
		}

		log.Error("unhandled error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func GetViewerIDFromGinContext(c *gin.Context) (int64, bool) {
	viewerID, ok := c.Get(GinContextKeyViewerID)
	if !ok {
		return 0, false
	}
	id, ok := viewerID.(int64)
	if !ok {
		return 0, false
	}
	return id, true
}
