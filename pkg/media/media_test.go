package media

import (
	"testing"

	"github.com/matzehuels/folio/pkg/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Kind
	}{
		{"empty", "", KindNone},
		{"whitespace", "   ", KindNone},
		{"bare video file", "video.mp4", KindVideoFile},
		{"webm with query", "https://cdn.example.com/clip.webm?t=10", KindVideoFile},
		{"mov uppercase", "https://cdn.example.com/CLIP.MOV", KindVideoFile},
		{"video file wins over youtube host", "https://youtube.com/raw/clip.mp4", KindVideoFile},
		{"youtu.be short link", "https://youtu.be/abc123", KindYouTube},
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", KindYouTube},
		{"youtube mobile subdomain", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", KindYouTube},
		{"youtube scheme-less", "youtu.be/abc123", KindYouTube},
		{"youtube uppercase host", "HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ", KindYouTube},
		{"facebook video", "https://facebook.com/page/videos/1", KindFacebookVideo},
		{"facebook video www", "https://www.facebook.com/someone/videos/123456/", KindFacebookVideo},
		{"facebook post", "https://www.facebook.com/someone/posts/123", KindFacebookPost},
		{"facebook other page", "https://m.facebook.com/story.php?id=1", KindFacebookPost},
		{"facebook videos only in query", "https://facebook.com/watch?next=/videos/1", KindFacebookPost},
		{"instagram", "https://instagram.com/p/xyz", KindInstagram},
		{"instagram www", "https://www.instagram.com/reel/xyz/", KindInstagram},
		{"instagr.am", "https://instagr.am/p/xyz", KindInstagram},
		{"image", "https://example.com/pic.png", KindImage},
		{"relative image", "/images/cover.jpg", KindImage},
		{"lookalike host", "https://notyoutube.com/watch?v=dQw4w9WgXcQ", KindImage},
		{"platform only in query", "https://example.com/?ref=youtube.com", KindImage},
		{"malformed", "%%%", KindImage},
		{"not a url", "just some words", KindImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.url); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassifyTotalAndIdempotent(t *testing.T) {
	inputs := []string{
		"", "video.mp4", "https://youtu.be/abc123", "https://facebook.com/page/videos/1",
		"https://instagram.com/p/xyz", "https://example.com/pic.png", "%%%", "::::",
		"http://", "https://", "//", "?v=abcdef", "\x7f",
	}

	for _, in := range inputs {
		first := Classify(in)
		if !first.Valid() {
			t.Errorf("Classify(%q) = %q, not a defined kind", in, first)
		}
		if second := Classify(in); second != first {
			t.Errorf("Classify(%q) not idempotent: %q then %q", in, first, second)
		}
	}
}

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		kind Kind
		want float64
	}{
		{KindVideoFile, 56.25},
		{KindYouTube, 56.25},
		{KindFacebookVideo, 56.25},
		{KindInstagram, 100},
		{KindFacebookPost, 100},
		{KindNone, 100},
		{KindImage, 66.6667},
		{Kind(""), 56.25},
		{Kind("hologram"), 56.25},
	}

	for _, tt := range tests {
		if got := tt.kind.AspectRatio(); got != tt.want {
			t.Errorf("%q.AspectRatio() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestKindsAreValid(t *testing.T) {
	for _, k := range Kinds {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if Kind("").Valid() {
		t.Error("zero Kind should not be valid")
	}
}

func TestResolveEmbed(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		kind    Kind
		want    string
		element Element
	}{
		{
			name:    "video file passes through",
			url:     "https://cdn.example.com/clip.mp4",
			kind:    KindVideoFile,
			want:    "https://cdn.example.com/clip.mp4",
			element: ElementVideo,
		},
		{
			name:    "youtu.be",
			url:     "https://youtu.be/abc123",
			kind:    KindYouTube,
			want:    "https://www.youtube.com/embed/abc123",
			element: ElementIFrame,
		},
		{
			name:    "youtube watch",
			url:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42",
			kind:    KindYouTube,
			want:    "https://www.youtube.com/embed/dQw4w9WgXcQ",
			element: ElementIFrame,
		},
		{
			name:    "youtube embed",
			url:     "https://www.youtube.com/embed/dQw4w9WgXcQ",
			kind:    KindYouTube,
			want:    "https://www.youtube.com/embed/dQw4w9WgXcQ",
			element: ElementIFrame,
		},
		{
			name:    "facebook video",
			url:     "https://facebook.com/page/videos/1",
			kind:    KindFacebookVideo,
			want:    "https://www.facebook.com/plugins/video.php?href=https%3A%2F%2Ffacebook.com%2Fpage%2Fvideos%2F1&show_text=0&width=560",
			element: ElementIFrame,
		},
		{
			name:    "facebook post",
			url:     "https://www.facebook.com/user/posts/123",
			kind:    KindFacebookPost,
			want:    "https://www.facebook.com/plugins/post.php?href=https%3A%2F%2Fwww.facebook.com%2Fuser%2Fposts%2F123&show_text=true&width=500&height=600",
			element: ElementIFrame,
		},
		{
			name:    "instagram",
			url:     "https://instagram.com/p/xyz",
			kind:    KindInstagram,
			want:    "https://instagram.com/p/xyz/embed",
			element: ElementIFrame,
		},
		{
			name:    "instagram trailing slash",
			url:     "https://instagram.com/p/xyz/",
			kind:    KindInstagram,
			want:    "https://instagram.com/p/xyz/embed",
			element: ElementIFrame,
		},
		{
			name:    "image passes through",
			url:     "https://example.com/pic.png",
			kind:    KindImage,
			want:    "https://example.com/pic.png",
			element: ElementImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveEmbed(tt.url, tt.kind)
			if err != nil {
				t.Fatalf("ResolveEmbed(%q) error: %v", tt.url, err)
			}
			if got.Src != tt.want {
				t.Errorf("Src = %q, want %q", got.Src, tt.want)
			}
			if got.Element != tt.element {
				t.Errorf("Element = %q, want %q", got.Element, tt.element)
			}
			if got.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.kind)
			}
		})
	}
}

func TestResolveEmbedUnresolvableYouTube(t *testing.T) {
	for _, u := range []string{
		"https://www.youtube.com/channel",
		"https://youtu.be/abc",
		"https://www.youtube.com/",
	} {
		_, err := ResolveEmbed(u, KindYouTube)
		if err == nil {
			t.Errorf("ResolveEmbed(%q) should fail", u)
			continue
		}
		if !errors.Is(err, errors.ErrCodeUnresolvableEmbed) {
			t.Errorf("ResolveEmbed(%q) code = %v, want %v", u, errors.GetCode(err), errors.ErrCodeUnresolvableEmbed)
		}
	}
}

func TestResolveEmbedUnknownKind(t *testing.T) {
	_, err := ResolveEmbed("https://example.com", Kind("hologram"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown kind error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestResolve(t *testing.T) {
	t.Run("none has no embed", func(t *testing.T) {
		m := Resolve("")
		if m.Kind != KindNone || m.Renderable() {
			t.Errorf("Resolve(\"\") = %+v, want none without embed", m)
		}
		if m.AspectRatio != 100 {
			t.Errorf("AspectRatio = %v, want 100", m.AspectRatio)
		}
	})

	t.Run("youtube carries id and embed", func(t *testing.T) {
		m := Resolve("https://youtu.be/abc123")
		if m.Kind != KindYouTube {
			t.Fatalf("Kind = %q, want youtube", m.Kind)
		}
		if m.YouTubeID != "abc123" {
			t.Errorf("YouTubeID = %q, want abc123", m.YouTubeID)
		}
		if m.Embed == nil || m.Embed.Src != "https://www.youtube.com/embed/abc123" {
			t.Fatalf("Embed = %+v", m.Embed)
		}
		if !m.Embed.AllowFullscreen {
			t.Error("youtube embed should allow fullscreen")
		}
	})

	t.Run("unresolvable youtube degrades to absent embed", func(t *testing.T) {
		m := Resolve("https://www.youtube.com/channel")
		if m.Kind != KindYouTube {
			t.Fatalf("Kind = %q, want youtube", m.Kind)
		}
		if m.Renderable() {
			t.Errorf("Embed = %+v, want nil", m.Embed)
		}
		if m.AspectRatio != 56.25 {
			t.Errorf("AspectRatio = %v, want 56.25", m.AspectRatio)
		}
	})

	t.Run("instagram embed suffix", func(t *testing.T) {
		m := Resolve("https://instagram.com/p/xyz")
		if m.Embed == nil || m.Embed.Src != "https://instagram.com/p/xyz/embed" {
			t.Fatalf("Embed = %+v", m.Embed)
		}
		if !m.Embed.NoScroll {
			t.Error("instagram embed should disable scrolling")
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		m := Resolve("  https://example.com/pic.png\n")
		if m.URL != "https://example.com/pic.png" || m.Embed == nil || m.Embed.Src != m.URL {
			t.Errorf("Resolve kept whitespace: %+v", m)
		}
	})
}

func TestYouTubeID(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://youtu.be/abc123", "abc123", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?feature=share&v=a-b_c-d", "a-b_c-d", true},
		{"https://www.youtube.com/embed/xyz7890?start=3", "xyz7890", true},
		{"https://www.youtube.com/user/videos/abcdef1", "abcdef1", true},
		{"https://youtu.be/abc", "", false},
		{"https://www.youtube.com/", "", false},
	}

	for _, tt := range tests {
		got, ok := YouTubeID(tt.url)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("YouTubeID(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://a.b/c?d=e&f", "https%3A%2F%2Fa.b%2Fc%3Fd%3De%26f"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"!'()*-_.~", "!'()*-_.~"},
	}

	for _, tt := range tests {
		if got := encodeURIComponent(tt.in); got != tt.want {
			t.Errorf("encodeURIComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
