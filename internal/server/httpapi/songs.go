package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/musicbox/internal/server/songs"
)

// songRequest is shared by create and update: every field is optional and
// absent fields stay untouched on update.
type songRequest struct {
	Title             *string `json:"title"`
	Duration          *string `json:"duration"`
	URLFile           *string `json:"url_file"`
	CoverImageURL     *string `json:"cover_image_url"`
	ThumbnailURL      *string `json:"thumbnail_url"`
	Genre             *string `json:"genre"`
	Language          *string `json:"language"`
	Lyrics            *string `json:"lyrics"`
	SpotifyTrackID    *string `json:"spotify_track_id"`
	SpotifyTrackURI   *string `json:"spotify_track_uri"`
	SpotifyTrackURL   *string `json:"spotify_track_url"`
	SpotifyPreviewURL *string `json:"spotify_preview_url"`
}

func (r *songRequest) params() songs.Params {
	return songs.Params{
		Title:             r.Title,
		Duration:          r.Duration,
		URLFile:           r.URLFile,
		CoverImageURL:     r.CoverImageURL,
		ThumbnailURL:      r.ThumbnailURL,
		Genre:             r.Genre,
		Language:          r.Language,
		Lyrics:            r.Lyrics,
		SpotifyTrackID:    r.SpotifyTrackID,
		SpotifyTrackURI:   r.SpotifyTrackURI,
		SpotifyTrackURL:   r.SpotifyTrackURL,
		SpotifyPreviewURL: r.SpotifyPreviewURL,
	}
}

type listSongsQuery struct {
	Q          string `form:"q"`
	Title      string `form:"title"`
	Genre      string `form:"genre"`
	Language   string `form:"language"`
	HasPreview *bool  `form:"has_preview"`
	Sort       string `form:"sort"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=20"`
}

func (s *Server) listSongs(c *gin.Context) {
	var q listSongsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid query parameters"})
		return
	}
	list, err := s.svc.Songs.List(c.Request.Context(), songs.ListParams{
		Query:      q.Q,
		Title:      q.Title,
		Genre:      q.Genre,
		Language:   q.Language,
		HasPreview: q.HasPreview,
		Sort:       q.Sort,
		Page:       q.Page,
		PageSize:   q.PageSize,
	})
	if err != nil {
		writeError(c, err, "Song not found")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getSong(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	song, err := s.svc.Songs.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Song not found")
		return
	}
	c.JSON(http.StatusOK, song)
}

func (s *Server) createSong(c *gin.Context) {
	var req songRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}
	song, err := s.svc.Songs.Create(c.Request.Context(), req.params())
	if err != nil {
		writeError(c, err, "Song not found")
		return
	}
	c.JSON(http.StatusCreated, song)
}

func (s *Server) updateSong(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req songRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}
	song, err := s.svc.Songs.Update(c.Request.Context(), id, req.params())
	if err != nil {
		writeError(c, err, "Song not found")
		return
	}
	c.JSON(http.StatusOK, song)
}

func (s *Server) deleteSong(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.Songs.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "Song not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Song deleted successfully."})
}
