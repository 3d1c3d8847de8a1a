// Package media classifies media URLs and derives renderable embeds for them.
//
// # Overview
//
// A work item in the gallery carries a single media URL. That URL may point at a
// video file, an image, or a page on a third-party platform (YouTube, Facebook,
// Instagram). This package answers two questions about it without ever fetching it:
//
//   - Which [Kind] of media is it? ([Classify])
//   - What should the page embed to show it? ([ResolveEmbed], [Resolve])
//
// Classification is a first-match-wins sequence of string heuristics, so it is a
// total function: every input, including malformed URLs, maps to exactly one kind.
//
// # Aspect Ratios
//
// Each kind has a fixed aspect ratio expressed as a height/width percentage
// ([Kind.AspectRatio]). The masonry layout uses it to estimate card heights; the
// page uses it as the padding-bottom of the media box. It is an approximation, not
// a measurement of the real media.
//
// # Unresolvable Embeds
//
// The only explicit failure is a YouTube URL from which no video identifier can be
// extracted. [ResolveEmbed] reports it as an error with code
// [errors.ErrCodeUnresolvableEmbed]; [Resolve] folds it into a nil [Media.Embed] so
// the caller renders an empty media slot instead of a broken iframe.
//
// [errors.ErrCodeUnresolvableEmbed]: github.com/matzehuels/folio/pkg/errors.ErrCodeUnresolvableEmbed
package media
