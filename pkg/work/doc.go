// Package work defines the gallery's work item record and loads item lists from
// content files.
//
// # Item
//
// An [Item] is one card in the gallery: a stable identifier, an optional media URL,
// a display name and a description. The layout and rendering packages treat items
// as immutable values owned by the caller.
//
// # Content Files
//
// Items can be read from TOML or JSON:
//
//	# works.toml
//	[[work]]
//	id = "reel"
//	name = "Showreel"
//	media = "https://youtu.be/abc123"
//
// JSON accepts either a bare array or an object with a "projects" or "work" array.
// The media URL may be given as "media", "imageSrc", "img" or "image":
//
//	{"projects": [{"id": "1", "title": "Poster", "imageSrc": "/img/poster.png"}]}
//
// Items without an id get one derived from their name and media URL with
// [DeriveID], so the identifier stays stable across reloads as long as the card
// itself does not change.
//
// # Fingerprints
//
// [Fingerprint] hashes an item list's content. Layout recomputation and HTTP
// caching use it to detect whether the list actually changed.
package work
