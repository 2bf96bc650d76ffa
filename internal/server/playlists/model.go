package playlists

import "time"

// Playlist is a named song collection owned by a user.
type Playlist struct {
	ID        int64     `json:"playlist_id"`
	Title     string    `json:"title"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
