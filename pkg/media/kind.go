package media

// Kind is the closed set of media classifications.
type Kind string

const (
	KindNone          Kind = "none"
	KindVideoFile     Kind = "video-file"
	KindYouTube       Kind = "youtube"
	KindFacebookVideo Kind = "facebook-video"
	KindFacebookPost  Kind = "facebook-post"
	KindInstagram     Kind = "instagram"
	KindImage         Kind = "image"
)

// Aspect ratios as height/width percentages.
const (
	RatioWide   = 56.25   // 16:9
	RatioSquare = 100.0   // 1:1
	RatioPhoto  = 66.6667 // 3:2

	// RatioFallback applies to values outside the closed set.
	RatioFallback = RatioWide
)

// Kinds lists every valid kind in classification order.
var Kinds = []Kind{
	KindNone,
	KindVideoFile,
	KindYouTube,
	KindFacebookVideo,
	KindFacebookPost,
	KindInstagram,
	KindImage,
}

var aspectRatios = map[Kind]float64{
	KindVideoFile:     RatioWide,
	KindYouTube:       RatioWide,
	KindFacebookVideo: RatioWide,
	KindInstagram:     RatioSquare,
	KindFacebookPost:  RatioSquare,
	KindNone:          RatioSquare,
	KindImage:         RatioPhoto,
}

// AspectRatio returns the kind's box height as a percentage of its width.
func (k Kind) AspectRatio() float64 {
	if r, ok := aspectRatios[k]; ok {
		return r
	}
	return RatioFallback
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	_, ok := aspectRatios[k]
	return ok
}

// IsVideo reports whether the kind plays back as a video.
func (k Kind) IsVideo() bool {
	return k == KindVideoFile || k == KindYouTube || k == KindFacebookVideo
}

// IsThirdParty reports whether the kind is rendered through a platform iframe.
func (k Kind) IsThirdParty() bool {
	switch k {
	case KindYouTube, KindFacebookVideo, KindFacebookPost, KindInstagram:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }
