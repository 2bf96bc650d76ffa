package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/musicbox/internal/common"
)

type loginRequest struct {
	// identifier принимает username или email
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}
	pair, err := s.svc.Auth.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (s *Server) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}
	pair, err := s.svc.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrWrongTokenKind) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not a refresh token"})
			return
		}
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, pair)
}

// logout passes the raw Authorization header through; the service parses it
// and revokes the access token.
func (s *Server) logout(c *gin.Context) {
	if err := s.svc.Auth.Logout(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Logged out (access token revoked)."})
}

func (s *Server) me(c *gin.Context) {
	id, err := subjectID(claimsFrom(c))
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	user, err := s.svc.Users.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}
