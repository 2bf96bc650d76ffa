package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/musicbox/internal/server/users"
)

type createUserRequest struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
}

func (s *Server) listUsers(c *gin.Context) {
	list, err := s.svc.Users.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := s.svc.Users.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}
	user, err := s.svc.Users.Create(c.Request.Context(), users.CreateParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) updateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}
	user, err := s.svc.Users.Update(c.Request.Context(), id, users.UpdateParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.Users.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "User deleted successfully."})
}
