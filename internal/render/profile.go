package render

import "github.com/yourusername/mediascraper-go/internal/domain"

// ImageSource selects where a card's image is loaded from
type ImageSource int

const (
	// ImageNone attaches no image
	ImageNone ImageSource = iota
	// ImageDirect loads the payload URL as-is
	ImageDirect
	// ImageRelay loads the payload URL through the CORS relay
	ImageRelay
	// ImagePlaceholder loads a static local icon instead
	ImagePlaceholder
)

// FacebookPlaceholder replaces author pictures Facebook refuses to hotlink
const FacebookPlaceholder = "/static/facebook.svg"

// SectionRule describes how one payload object becomes a card
type SectionRule struct {
	Title         string
	Exclude       Exclusions
	ImageField    string
	Image         ImageSource
	Placeholder   string
	DownloadField string
}

// MediaRule describes how the media list becomes cards
type MediaRule struct {
	// ListFields are tried in order; the first present one is the list.
	ListFields []string
	// KeyedEntries means each list element is an object of name -> item,
	// and every name becomes a card titled with it.
	KeyedEntries  bool
	TitleField    string
	Exclude       Exclusions
	DownloadField string
	// InheritKind lets a payload-level is_video flag mark items as video.
	InheritKind bool
}

// Profile is everything that differs between platform renderers
type Profile struct {
	Platform       domain.Platform
	ReferrerPolicy string
	Content        SectionRule
	Author         SectionRule
	Music          *SectionRule
	Media          MediaRule
}

var profiles = map[domain.Platform]Profile{
	domain.PlatformTikTok: {
		Platform: domain.PlatformTikTok,
		Content: SectionRule{
			Title:         "Post",
			Exclude:       Exclude("cover", "id"),
			ImageField:    "cover",
			Image:         ImageDirect,
			DownloadField: "cover",
		},
		Author: SectionRule{
			Title:      "Author",
			Exclude:    Exclude("image", "id"),
			ImageField: "image",
			Image:      ImageDirect,
		},
		Music: &SectionRule{
			Title:         "Music",
			Exclude:       Exclude("src", "cover"),
			ImageField:    "cover",
			Image:         ImageDirect,
			DownloadField: "src",
		},
		Media: MediaRule{
			ListFields:   []string{"videos", "images"},
			KeyedEntries: true,
			Exclude:      Exclude("address", "is_video", "cover", "id"),
			InheritKind:  true,
		},
	},
	domain.PlatformInstagram: {
		Platform:       domain.PlatformInstagram,
		ReferrerPolicy: "no-referrer",
		Content: SectionRule{
			Title:      "Post",
			Exclude:    Exclude("cover", "id"),
			ImageField: "cover",
			Image:      ImageRelay,
		},
		Author: SectionRule{
			Title:      "Author",
			Exclude:    Exclude("image", "id"),
			ImageField: "image",
			Image:      ImageRelay,
		},
		Media: MediaRule{
			ListFields: []string{"media"},
			Exclude:    Exclude("is_video", "address", "cover", "id"),
		},
	},
	domain.PlatformFacebook: {
		Platform:       domain.PlatformFacebook,
		ReferrerPolicy: "no-referrer",
		Content: SectionRule{
			Title:         "Post",
			Exclude:       Exclude("cover", "id"),
			ImageField:    "cover",
			Image:         ImageRelay,
			DownloadField: "cover",
		},
		Author: SectionRule{
			Title:       "Author",
			Exclude:     Exclude("image"),
			Image:       ImagePlaceholder,
			Placeholder: FacebookPlaceholder,
		},
		Media: MediaRule{
			ListFields:    []string{"media"},
			TitleField:    "id",
			Exclude:       Exclude("is_video", "address", "cover"),
			DownloadField: "address",
		},
	},
}

// ProfileFor returns the renderer profile of a platform
func ProfileFor(platform domain.Platform) (Profile, bool) {
	p, ok := profiles[platform]
	return p, ok
}
