package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// createUpload hands out a presigned PUT URL together with the object key
// the client should later store on the song as url_file.
func (s *Server) createUpload(c *gin.Context) {
	key, url, err := s.svc.Media.NewUploadURL(c.Request.Context())
	if err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "upload_url": url})
}

func (s *Server) downloadURL(c *gin.Context) {
	url, err := s.svc.Media.DownloadURL(c.Request.Context(), c.Query("key"))
	if err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"download_url": url})
}
