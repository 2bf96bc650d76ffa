package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/musicbox/internal/server/albums"
)

type createAlbumRequest struct {
	Title           string  `json:"title"`
	Duration        *string `json:"duration"`
	CoverImageURL   *string `json:"cover_image_url"`
	Genre           *string `json:"genre"`
	Language        *string `json:"language"`
	Description     *string `json:"description"`
	ReleaseDate     *string `json:"release_date"`
	ProducerCompany *string `json:"producer_company"`
	TotalTracks     *int    `json:"total_tracks"`
}

func (s *Server) listAlbums(c *gin.Context) {
	list, err := s.svc.Albums.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "Album not found")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getAlbum(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	album, err := s.svc.Albums.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Album not found")
		return
	}
	c.JSON(http.StatusOK, album)
}

func (s *Server) createAlbum(c *gin.Context) {
	var req createAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}
	album, err := s.svc.Albums.Create(c.Request.Context(), albums.Params{
		Title:           req.Title,
		Duration:        req.Duration,
		CoverImageURL:   req.CoverImageURL,
		Genre:           req.Genre,
		Language:        req.Language,
		Description:     req.Description,
		ReleaseDate:     req.ReleaseDate,
		ProducerCompany: req.ProducerCompany,
		TotalTracks:     req.TotalTracks,
	})
	if err != nil {
		writeError(c, err, "Album not found")
		return
	}
	c.JSON(http.StatusCreated, album)
}
