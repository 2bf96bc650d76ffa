package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type createPlaylistRequest struct {
	Title string `json:"title"`
}

// createPlaylist creates a playlist owned by the caller: the owner comes
// from the access token, not from the body.
func (s *Server) createPlaylist(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}
	userID, err := subjectID(claimsFrom(c))
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	playlist, err := s.svc.Playlists.Create(c.Request.Context(), req.Title, userID)
	if err != nil {
		writeError(c, err, "Playlist not found")
		return
	}
	c.JSON(http.StatusCreated, playlist)
}

func (s *Server) getPlaylist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	playlist, err := s.svc.Playlists.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Playlist not found")
		return
	}
	c.JSON(http.StatusOK, playlist)
}

func (s *Server) listPlaylists(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid user_id"})
		return
	}
	list, err := s.svc.Playlists.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, "Playlist not found")
		return
	}
	c.JSON(http.StatusOK, list)
}
