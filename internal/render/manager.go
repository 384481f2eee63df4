package render

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

// Board receives finished cards. Every insert lands directly after the
// board's anchor, so the newest card is shown first.
type Board interface {
	Insert(card *domain.Card) error
}

// ContentManager renders one platform payload onto a board
type ContentManager struct {
	profile Profile
	relay   Relay
	board   Board
}

// NewContentManager creates a manager for a single response
func NewContentManager(profile Profile, relay Relay, board Board) *ContentManager {
	return &ContentManager{
		profile: profile,
		relay:   relay,
		board:   board,
	}
}

// Render runs SetContent, SetAuthor, SetMusic and SetMedia in that order
func (m *ContentManager) Render(payload gjson.Result) error {
	if err := m.SetContent(payload.Get("content")); err != nil {
		return err
	}
	if err := m.SetAuthor(payload.Get("author")); err != nil {
		return err
	}
	if err := m.SetMusic(payload.Get("music")); err != nil {
		return err
	}
	return m.SetMedia(payload)
}

// SetContent renders the "Post" card
func (m *ContentManager) SetContent(content gjson.Result) error {
	return m.renderSection(m.profile.Content, content)
}

// SetAuthor renders the "Author" card
func (m *ContentManager) SetAuthor(author gjson.Result) error {
	return m.renderSection(m.profile.Author, author)
}

// SetMusic renders the "Music" card on platforms that carry one.
// A payload without music renders no card.
func (m *ContentManager) SetMusic(music gjson.Result) error {
	if m.profile.Music == nil || !music.Exists() || music.Type == gjson.Null {
		return nil
	}
	return m.renderSection(*m.profile.Music, music)
}

// SetMedia renders one card per media item, in list order
func (m *ContentManager) SetMedia(payload gjson.Result) error {
	rule := m.profile.Media

	var list gjson.Result
	for _, field := range rule.ListFields {
		if list = payload.Get(field); list.Exists() && list.Type != gjson.Null {
			break
		}
	}
	if !list.IsArray() {
		return fmt.Errorf("%w: %s payload has no media list (%s)",
			domain.ErrMalformedPayload, m.profile.Platform, strings.Join(rule.ListFields, ", "))
	}

	payloadVideo := rule.InheritKind && payload.Get("is_video").Bool()

	var err error
	for _, entry := range list.Array() {
		if !rule.KeyedEntries {
			title := ""
			if rule.TitleField != "" {
				title = entry.Get(rule.TitleField).String()
			}
			if err = m.renderMediaItem(title, entry, payloadVideo); err != nil {
				return err
			}
			continue
		}

		entry.ForEach(func(name, item gjson.Result) bool {
			err = m.renderMediaItem(name.String(), item, payloadVideo)
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *ContentManager) renderMediaItem(title string, item gjson.Result, payloadVideo bool) error {
	if !item.IsObject() {
		return fmt.Errorf("%w: %s media item %q is not an object",
			domain.ErrMalformedPayload, m.profile.Platform, title)
	}
	rule := m.profile.Media

	kind := domain.MediaImage
	if item.Get("is_video").Bool() || payloadVideo {
		kind = domain.MediaVideo
	}

	download := ""
	if rule.DownloadField != "" {
		download = item.Get(rule.DownloadField).String()
	}

	card := RenderCard(item, rule.Exclude, title, download)
	AttachMedia(card, m.relay.Wrap(item.Get("address").String()), kind, m.profile.ReferrerPolicy)
	return m.insert(card)
}

func (m *ContentManager) renderSection(rule SectionRule, obj gjson.Result) error {
	if !obj.IsObject() {
		return fmt.Errorf("%w: %s payload has no %s object",
			domain.ErrMalformedPayload, m.profile.Platform, strings.ToLower(rule.Title))
	}

	download := ""
	if rule.DownloadField != "" {
		download = obj.Get(rule.DownloadField).String()
	}

	card := RenderCard(obj, rule.Exclude, rule.Title, download)
	AttachMedia(card, m.imageSource(rule, obj), domain.MediaImage, m.profile.ReferrerPolicy)
	return m.insert(card)
}

func (m *ContentManager) imageSource(rule SectionRule, obj gjson.Result) string {
	switch rule.Image {
	case ImageDirect:
		return obj.Get(rule.ImageField).String()
	case ImageRelay:
		return m.relay.Wrap(obj.Get(rule.ImageField).String())
	case ImagePlaceholder:
		return rule.Placeholder
	default:
		return ""
	}
}

func (m *ContentManager) insert(card *domain.Card) error {
	card.Platform = m.profile.Platform
	if err := m.board.Insert(card); err != nil {
		return fmt.Errorf("failed to insert %s card: %w", card.Title, err)
	}
	return nil
}
