package domain

import "time"

// MediaKind is the element type attached to a card
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media is an image or video shown above a card's title block
type Media struct {
	Kind           MediaKind `json:"kind"`
	Src            string    `json:"src"`
	CrossOrigin    string    `json:"cross_origin,omitempty"`
	ReferrerPolicy string    `json:"referrer_policy,omitempty"`
	Controls       bool      `json:"controls,omitempty"`
}

// IsVideo reports whether the media renders as a video element
func (m *Media) IsVideo() bool {
	return m != nil && m.Kind == MediaVideo
}

// Row is one "key: value" line of a card
type Row struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	// DownloadURL flags the row label as a download link for the given target.
	DownloadURL string `json:"download_url,omitempty"`
}

// IsDownload reports whether the row label is an intercepted download link
func (r Row) IsDownload() bool {
	return r.DownloadURL != ""
}

// Card is one rendered block: a post, an author, a music track or a media item.
// Cards are inserted once and never updated or removed by the application.
type Card struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	SessionID string    `json:"session_id" gorm:"not null;index"`
	Platform  Platform  `json:"platform"`
	Title     string    `json:"title" gorm:"not null"`
	Rows      []Row     `json:"rows" gorm:"serializer:json;type:text"`
	Media     *Media    `json:"media,omitempty" gorm:"serializer:json;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// OffersDownload reports whether one of the card's rows links to target
func (c *Card) OffersDownload(target string) bool {
	for _, row := range c.Rows {
		if row.IsDownload() && row.DownloadURL == target {
			return true
		}
	}
	return false
}
