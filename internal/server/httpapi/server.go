// Package httpapi is the HTTP/JSON boundary: route registration, request
// contracts, the access guard and the error rendering shared by every
// endpoint. Handlers translate between wire shapes and the feature services;
// all domain rules live in the services.
package httpapi

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/musicbox/internal/logging"
	"github.com/dmitrijs2005/musicbox/internal/server/albums"
	"github.com/dmitrijs2005/musicbox/internal/server/auth"
	"github.com/dmitrijs2005/musicbox/internal/server/playlists"
	"github.com/dmitrijs2005/musicbox/internal/server/songs"
	"github.com/dmitrijs2005/musicbox/internal/server/users"
)

// The boundary consumes the feature services through these interfaces; the
// concrete *Service types satisfy them and tests substitute fakes.

type UserService interface {
	List(ctx context.Context) ([]*users.User, error)
	Get(ctx context.Context, id int64) (*users.User, error)
	Create(ctx context.Context, p users.CreateParams) (*users.User, error)
	Update(ctx context.Context, id int64, p users.UpdateParams) (*users.User, error)
	Delete(ctx context.Context, id int64) error
}

type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	Logout(ctx context.Context, authorizationHeader string) error
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

type SongService interface {
	List(ctx context.Context, p songs.ListParams) ([]*songs.Song, error)
	Get(ctx context.Context, id int64) (*songs.Song, error)
	Create(ctx context.Context, p songs.Params) (*songs.Song, error)
	Update(ctx context.Context, id int64, p songs.Params) (*songs.Song, error)
	Delete(ctx context.Context, id int64) error
}

type AlbumService interface {
	List(ctx context.Context) ([]*albums.Album, error)
	Get(ctx context.Context, id int64) (*albums.Album, error)
	Create(ctx context.Context, p albums.Params) (*albums.Album, error)
}

type PlaylistService interface {
	Create(ctx context.Context, title string, userID int64) (*playlists.Playlist, error)
	Get(ctx context.Context, id int64) (*playlists.Playlist, error)
	ListByUser(ctx context.Context, userID int64) ([]*playlists.Playlist, error)
}

type MediaService interface {
	NewUploadURL(ctx context.Context) (key string, url string, err error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

// Services bundles everything the boundary serves.
type Services struct {
	Users     UserService
	Auth      AuthService
	Songs     SongService
	Albums    AlbumService
	Playlists PlaylistService
	Media     MediaService
}

type Server struct {
	svc  Services
	db   *sql.DB
	cors []string
	log  logging.Logger
}

func NewServer(svc Services, db *sql.DB, corsOrigins []string, log logging.Logger) *Server {
	return &Server{
		svc:  svc,
		db:   db,
		cors: corsOrigins,
		log:  log.With("module", "http"),
	}
}

// Router builds the gin engine with every route registered. Reads on the
// catalog are public; mutations and the media endpoints go through the
// access guard.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins: s.cors,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	guard := s.accessGuard()

	api := r.Group("/api")

	api.GET("/healthz", s.healthz)

	api.GET("/users", s.listUsers)
	api.POST("/users", s.createUser)
	api.GET("/users/:id", s.getUser)
	api.PUT("/users/:id", s.updateUser)
	api.DELETE("/users/:id", s.deleteUser)

	api.POST("/auth/login", s.login)
	api.POST("/auth/refresh", s.refresh)
	api.POST("/auth/logout", s.logout)
	api.GET("/me", guard, s.me)

	api.GET("/songs", s.listSongs)
	api.GET("/songs/:id", s.getSong)
	api.POST("/songs", guard, s.createSong)
	api.PUT("/songs/:id", guard, s.updateSong)
	api.DELETE("/songs/:id", guard, s.deleteSong)

	api.GET("/albums", s.listAlbums)
	api.GET("/albums/:id", s.getAlbum)
	api.POST("/albums", guard, s.createAlbum)

	api.GET("/playlists", s.listPlaylists)
	api.GET("/playlists/:id", s.getPlaylist)
	api.POST("/playlists", guard, s.createPlaylist)

	api.POST("/media/uploads", guard, s.createUpload)
	api.GET("/media/download-url", guard, s.downloadURL)

	return r
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
