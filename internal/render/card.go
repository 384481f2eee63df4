package render

import (
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

// DefaultTitle is used when a card has no title text
const DefaultTitle = "Item"

// DownloadPath is the route flagged download links point at
const DownloadPath = "/download"

// Exclusions is a set of payload keys that never become card rows
type Exclusions map[string]struct{}

// Exclude builds an exclusion set
func Exclude(keys ...string) Exclusions {
	set := make(Exclusions, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}

// Has reports whether key is excluded
func (e Exclusions) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// RenderCard builds a titled card with one row per key of obj, in the
// object's own key order, skipping excluded keys. When downloadURL is set
// the first row's label becomes a download link for it.
func RenderCard(obj gjson.Result, excluded Exclusions, title, downloadURL string) *domain.Card {
	if title == "" {
		title = DefaultTitle
	}
	card := &domain.Card{Title: title, Rows: []domain.Row{}}
	if !obj.IsObject() {
		return card
	}

	obj.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if excluded.Has(k) {
			return true
		}
		row := domain.Row{Key: k, Value: FormatValue(value)}
		if downloadURL != "" && len(card.Rows) == 0 {
			row.DownloadURL = downloadURL
		}
		card.Rows = append(card.Rows, row)
		return true
	})
	return card
}

// AttachMedia puts an image or video above the card's title block.
// An empty src leaves the card untouched.
func AttachMedia(card *domain.Card, src string, kind domain.MediaKind, referrerPolicy string) {
	if src == "" {
		return
	}
	card.Media = &domain.Media{
		Kind:           kind,
		Src:            src,
		CrossOrigin:    "anonymous",
		ReferrerPolicy: referrerPolicy,
		Controls:       kind == domain.MediaVideo,
	}
}

// DownloadHref is the link a flagged row label points at
func DownloadHref(target string) string {
	return DownloadPath + "?url=" + url.QueryEscape(target)
}
