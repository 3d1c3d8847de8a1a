package media

import (
	"net/url"
	"regexp"
	"strings"
)

var videoFileRe = regexp.MustCompile(`(?i)\.(mp4|webm|mov)(\?.*)?$`)

var (
	youTubeHosts   = []string{"youtube.com", "youtu.be"}
	facebookHosts  = []string{"facebook.com"}
	instagramHosts = []string{"instagram.com", "instagr.am"}
)

// Classify maps a media URL to its kind. The checks run in a fixed order and the
// first match wins, because the patterns overlap: a YouTube URL ending in .mp4 is
// a video file.
//
// Classify never fails. An empty URL is [KindNone]; anything that matches no
// platform, including strings that are not URLs at all, is [KindImage].
func Classify(rawURL string) Kind {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return KindNone
	}
	if videoFileRe.MatchString(s) {
		return KindVideoFile
	}

	host, path := splitURL(s)
	switch {
	case matchHost(host, youTubeHosts...):
		return KindYouTube
	case matchHost(host, facebookHosts...):
		if strings.Contains(strings.ToLower(path), "/videos/") {
			return KindFacebookVideo
		}
		return KindFacebookPost
	case matchHost(host, instagramHosts...):
		return KindInstagram
	}
	return KindImage
}

// splitURL returns the lowercased host and the path of s. Scheme-less input such
// as "youtu.be/abc123" is retried as a network-path reference so the first segment
// is read as the host. Unparseable input yields an empty host.
func splitURL(s string) (host, path string) {
	u, err := url.Parse(s)
	if err == nil && u.Scheme == "" && u.Host == "" && !strings.HasPrefix(s, "/") {
		u, err = url.Parse("//" + s)
	}
	if err != nil {
		return "", ""
	}
	return strings.ToLower(u.Hostname()), u.Path
}

// matchHost reports whether host is one of domains or a subdomain of one.
func matchHost(host string, domains ...string) bool {
	if host == "" {
		return false
	}
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
