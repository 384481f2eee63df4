package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

func TestRenderCard_ExcludesKeys(t *testing.T) {
	obj := gjson.Parse(`{"id":1,"cover":"u","title":"t"}`)

	card := RenderCard(obj, Exclude("cover", "id"), "Post", "")

	assert.Equal(t, "Post", card.Title)
	require.Len(t, card.Rows, 1)
	assert.Equal(t, domain.Row{Key: "title", Value: "t"}, card.Rows[0])
	assert.Nil(t, card.Media)
}

func TestRenderCard_KeepsKeyOrder(t *testing.T) {
	obj := gjson.Parse(`{"zeta":1,"alpha":2000,"mid":"x"}`)

	card := RenderCard(obj, nil, "Author", "")

	var keys []string
	for _, row := range card.Rows {
		keys = append(keys, row.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
	assert.Equal(t, "2.0k", card.Rows[1].Value)
}

func TestRenderCard_DownloadFlagsFirstRowOnly(t *testing.T) {
	obj := gjson.Parse(`{"desc":"d","likes":5}`)

	card := RenderCard(obj, nil, "Post", "https://cdn.example/cover.jpg")

	require.Len(t, card.Rows, 2)
	assert.True(t, card.Rows[0].IsDownload())
	assert.Equal(t, "https://cdn.example/cover.jpg", card.Rows[0].DownloadURL)
	assert.False(t, card.Rows[1].IsDownload())
}

func TestRenderCard_DefaultTitle(t *testing.T) {
	card := RenderCard(gjson.Parse(`{}`), nil, "", "")
	assert.Equal(t, DefaultTitle, card.Title)
	assert.Empty(t, card.Rows)
}

func TestAttachMedia(t *testing.T) {
	card := &domain.Card{Title: "x"}

	AttachMedia(card, "", domain.MediaImage, "")
	assert.Nil(t, card.Media)

	AttachMedia(card, "https://r/?url=a", domain.MediaVideo, "no-referrer")
	require.NotNil(t, card.Media)
	assert.True(t, card.Media.IsVideo())
	assert.True(t, card.Media.Controls)
	assert.Equal(t, "anonymous", card.Media.CrossOrigin)
	assert.Equal(t, "no-referrer", card.Media.ReferrerPolicy)
}

func TestRelay_Wrap(t *testing.T) {
	relay := NewRelay("https://api.cors.lol/")

	assert.Equal(t, "https://api.cors.lol/?url=a", relay.Wrap("a"))
	assert.Equal(t, "https://api.cors.lol/?url=https%3A%2F%2Fcdn.x%2Fv.mp4%3Fa%3D1%26b%3D2",
		relay.Wrap("https://cdn.x/v.mp4?a=1&b=2"))
	assert.Empty(t, relay.Wrap(""))
}

func TestRelay_BareHost(t *testing.T) {
	assert.Equal(t, "https://relay.local/?url=a", NewRelay("relay.local").Wrap("a"))
}

func TestDownloadHref(t *testing.T) {
	assert.Equal(t, "/download?url=https%3A%2F%2Fcdn.x%2Fa.mp4", DownloadHref("https://cdn.x/a.mp4"))
}

func TestStack_NewestFirst(t *testing.T) {
	stack := NewStack()
	first := &domain.Card{Title: "first"}
	second := &domain.Card{Title: "second"}

	require.NoError(t, stack.Insert(first))
	require.NoError(t, stack.Insert(second))

	cards := stack.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "second", cards[0].Title)
	assert.Equal(t, "first", cards[1].Title)
	assert.Greater(t, cards[0].ID, cards[1].ID)

	cards[0] = nil
	assert.Equal(t, "second", stack.Cards()[0].Title)
}
