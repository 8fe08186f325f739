package middleware

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindstack/mindstack/pkg/helpers"
	"github.com/mindstack/mindstack/pkg/response"
)

const userIDKey = "userID"

// Auth extracts and validates the bearer token from the Authorization
// header. Checks run in a fixed order and each failure carries its own 401
// reason; token validation itself is a single opaque "invalid token". The
// subject is parsed here, not in the token layer, so a malformed user id
// gets its own reason. On success the user id is stored in the Gin context.
func Auth(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortError(c, http.StatusUnauthorized, "no authorization header")
			return
		}
		if !isASCII(header) {
			response.AbortError(c, http.StatusUnauthorized, "invalid authorization header")
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "invalid authorization header format")
			return
		}
		sub, err := tokens.ValidateSubject(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid token")
			return
		}
		userID, err := uuid.Parse(sub)
		if err != nil || userID == uuid.Nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid user id in token")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user's id set by Auth.
func UserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
