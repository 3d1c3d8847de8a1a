package media

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/folio/pkg/errors"
)

// Element is the HTML element an embed is rendered with.
type Element string

const (
	ElementNone   Element = ""
	ElementVideo  Element = "video"
	ElementIFrame Element = "iframe"
	ElementImage  Element = "img"
)

// Platform endpoints.
const (
	youTubeEmbedBase  = "https://www.youtube.com/embed/"
	facebookVideoBase = "https://www.facebook.com/plugins/video.php"
	facebookPostBase  = "https://www.facebook.com/plugins/post.php"

	facebookPostHeight = 600
)

var youTubeIDRe = regexp.MustCompile(`(?i)(?:v=|/videos/|embed/|youtu\.be/)([\w-]{6,})`)

// Embed is the renderable form of a media URL.
type Embed struct {
	Kind    Kind    `json:"kind"`
	Element Element `json:"element,omitempty"`
	Src     string  `json:"src"`

	// Iframe presentation. Title is the fallback used when the work has no name.
	Title           string `json:"title,omitempty"`
	Allow           string `json:"allow,omitempty"`
	AllowFullscreen bool   `json:"allow_fullscreen,omitempty"`
	NoScroll        bool   `json:"no_scroll,omitempty"`
}

// Media is the tagged classification of one URL: its kind plus the kind-specific
// payload. Embed is nil when there is nothing to render.
type Media struct {
	URL         string  `json:"url"`
	Kind        Kind    `json:"kind"`
	AspectRatio float64 `json:"aspect_ratio"`
	Embed       *Embed  `json:"embed,omitempty"`

	// YouTubeID is set for resolvable YouTube URLs.
	YouTubeID string `json:"youtube_id,omitempty"`
}

// Renderable reports whether the media has an embed to show.
func (m Media) Renderable() bool { return m.Embed != nil }

// Resolve classifies rawURL and resolves its embed in one step. Unresolvable
// embeds are not errors here: Embed is left nil and the caller renders an empty
// media slot.
func Resolve(rawURL string) Media {
	s := strings.TrimSpace(rawURL)
	kind := Classify(s)
	m := Media{URL: s, Kind: kind, AspectRatio: kind.AspectRatio()}
	if kind == KindNone {
		return m
	}
	if kind == KindYouTube {
		m.YouTubeID, _ = YouTubeID(s)
	}
	if e, err := ResolveEmbed(s, kind); err == nil {
		m.Embed = &e
	}
	return m
}

// ResolveEmbed derives the embed for rawURL, which must already be classified as
// kind. It returns an error with code [errors.ErrCodeUnresolvableEmbed] when no
// YouTube video ID can be extracted, and [errors.ErrCodeInvalidInput] for kinds
// outside the closed set.
//
// Image and none kinds use the URL as-is.
func ResolveEmbed(rawURL string, kind Kind) (Embed, error) {
	s := strings.TrimSpace(rawURL)

	switch kind {
	case KindNone:
		return Embed{Kind: kind, Src: s}, nil

	case KindImage:
		return Embed{Kind: kind, Element: ElementImage, Src: s}, nil

	case KindVideoFile:
		return Embed{Kind: kind, Element: ElementVideo, Src: s}, nil

	case KindYouTube:
		id, ok := YouTubeID(s)
		if !ok {
			return Embed{}, errors.New(errors.ErrCodeUnresolvableEmbed, "no YouTube video id in %q", s)
		}
		return Embed{
			Kind:            kind,
			Element:         ElementIFrame,
			Src:             youTubeEmbedBase + id,
			Title:           "video",
			Allow:           "autoplay; encrypted-media; picture-in-picture",
			AllowFullscreen: true,
		}, nil

	case KindFacebookVideo:
		return Embed{
			Kind:            kind,
			Element:         ElementIFrame,
			Src:             facebookVideoBase + "?href=" + encodeURIComponent(s) + "&show_text=0&width=560",
			Title:           "facebook-video",
			Allow:           "autoplay; encrypted-media; picture-in-picture; fullscreen",
			AllowFullscreen: true,
		}, nil

	case KindFacebookPost:
		src := facebookPostBase + "?href=" + encodeURIComponent(s) + "&show_text=true&width=500"
		return Embed{
			Kind:     kind,
			Element:  ElementIFrame,
			Src:      src + "&height=" + strconv.Itoa(facebookPostHeight),
			Title:    "facebook-post",
			Allow:    "encrypted-media",
			NoScroll: true,
		}, nil

	case KindInstagram:
		return Embed{
			Kind:     kind,
			Element:  ElementIFrame,
			Src:      strings.TrimSuffix(s, "/") + "/embed",
			Title:    "instagram-post",
			NoScroll: true,
		}, nil
	}

	return Embed{}, errors.New(errors.ErrCodeInvalidInput, "unknown media kind %q", kind)
}

// YouTubeID extracts the video identifier from a YouTube URL. It accepts watch
// URLs (v=), embed URLs, youtu.be short links and /videos/ paths.
func YouTubeID(rawURL string) (string, bool) {
	m := youTubeIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// uriComponentUnescaper restores the characters encodeURIComponent leaves alone
// but url.QueryEscape escapes.
var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s the way browsers do for a single query value.
func encodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}
