package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/musicbox/internal/common"
)

// writeError renders err as {"detail": "..."} with the matching status.
// notFound is the resource-specific message used when err is ErrorNotFound,
// e.g. "Song not found".
func writeError(c *gin.Context, err error, notFound string) {
	c.AbortWithStatusJSON(statusOf(err), gin.H{"detail": detailOf(err, notFound)})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorInvalidAuthHeaderFormat):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenRevoked),
		errors.Is(err, common.ErrWrongTokenKind):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func detailOf(err error, notFound string) string {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return notFound
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorAlreadyExists):
		// типизированные ошибки несут готовый текст
		return err.Error()
	case errors.Is(err, common.ErrorUnauthorized):
		return "Invalid credentials"
	case errors.Is(err, common.ErrTokenExpired):
		return "Token expired"
	case errors.Is(err, common.ErrTokenRevoked):
		return "Token has been revoked"
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrWrongTokenKind):
		return "Invalid token"
	case errors.Is(err, common.ErrorInvalidAuthHeaderFormat):
		return "Missing Bearer token in Authorization header"
	default:
		return "Internal server error"
	}
}

func writeBindError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
}

// pathID parses the :id route parameter. On failure it renders a 400 and
// reports false.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid id"})
		return 0, false
	}
	return id, true
}
