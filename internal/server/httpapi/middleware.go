package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/dmitrijs2005/musicbox/internal/server/auth"
)

const claimsKey = "authClaims"

// accessGuard rejects requests without a valid access token and stores the
// verified claims in the request context for the handler.
func (s *Server) accessGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			writeError(c, err, "")
			return
		}
		claims, err := s.svc.Auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrWrongTokenKind) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not an access token"})
				return
			}
			writeError(c, err, "User not found")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// subjectID extracts the numeric user id from the token subject.
func subjectID(claims *auth.Claims) (int64, error) {
	if claims == nil {
		return 0, common.ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id < 1 {
		return 0, common.ErrInvalidToken
	}
	return id, nil
}
