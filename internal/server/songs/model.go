package songs

import "database/sql"

// Song is a catalog row. Every content field is nullable; Duration is always
// stored normalized as HH:MM:SS.
type Song struct {
	ID                int64   `json:"song_id"`
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

// Update lists the mutable columns. A nil field is left unchanged; a present
// field with Valid=false writes NULL.
type Update struct {
	Title             *sql.Null[string]
	Duration          *sql.Null[string]
	URLFile           *sql.Null[string]
	CoverImageURL     *sql.Null[string]
	ThumbnailURL      *sql.Null[string]
	Genre             *sql.Null[string]
	Language          *sql.Null[string]
	Lyrics            *sql.Null[string]
	SpotifyTrackID    *sql.Null[string]
	SpotifyTrackURI   *sql.Null[string]
	SpotifyTrackURL   *sql.Null[string]
	SpotifyPreviewURL *sql.Null[string]
}

// Empty reports whether the update would change nothing.
func (u *Update) Empty() bool {
	return u.Title == nil && u.Duration == nil && u.URLFile == nil &&
		u.CoverImageURL == nil && u.ThumbnailURL == nil && u.Genre == nil &&
		u.Language == nil && u.Lyrics == nil && u.SpotifyTrackID == nil &&
		u.SpotifyTrackURI == nil && u.SpotifyTrackURL == nil && u.SpotifyPreviewURL == nil
}
