package albums

import "time"

// Album is a release row. Title is the only required field; releases may
// share a title.
type Album struct {
	ID              int64      `json:"album_id"`
	Title           string     `json:"title"`
	Duration        *string    `json:"duration"`
	CoverImageURL   *string    `json:"cover_image_url"`
	Genre           *string    `json:"genre"`
	Language        *string    `json:"language"`
	Description     *string    `json:"description"`
	ReleaseDate     *time.Time `json:"release_date"`
	ProducerCompany *string    `json:"producer_company"`
	TotalTracks     *int       `json:"total_tracks"`
	CreatedAt       time.Time  `json:"created_at"`
}
