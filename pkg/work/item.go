package work

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Placeholder text rendered for items without a name or description.
const (
	PlaceholderName        = "Project Name"
	PlaceholderDescription = "Description"
)

// namespace scopes derived item IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/folio/work"))

// Item is a single work card.
type Item struct {
	ID          string `json:"id" toml:"id"`
	Media       string `json:"media,omitempty" toml:"media"`
	Name        string `json:"name" toml:"name"`
	Description string `json:"description,omitempty" toml:"description"`
}

// HasMedia reports whether the item carries a media URL.
func (it Item) HasMedia() bool { return strings.TrimSpace(it.Media) != "" }

// DisplayName returns the name, or a placeholder when it is empty.
func (it Item) DisplayName() string {
	if it.Name == "" {
		return PlaceholderName
	}
	return it.Name
}

// DisplayDescription returns the description, or a placeholder when it is empty.
func (it Item) DisplayDescription() string {
	if it.Description == "" {
		return PlaceholderDescription
	}
	return it.Description
}

// DeriveID returns a deterministic identifier for an item with the given name and
// media URL.
func DeriveID(name, media string) string {
	return uuid.NewSHA1(namespace, []byte(name+"\x00"+media)).String()
}

// Fingerprint hashes the content of items in order. Two lists have the same
// fingerprint when they hold the same items in the same order.
func Fingerprint(items []Item) uint64 {
	d := xxhash.New()
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(items)))
	_, _ = d.Write(n[:])
	for _, it := range items {
		for _, field := range []string{it.ID, it.Media, it.Name, it.Description} {
			binary.LittleEndian.PutUint64(n[:], uint64(len(field)))
			_, _ = d.Write(n[:])
			_, _ = d.WriteString(field)
		}
	}
	return d.Sum64()
}

// IDs returns the identifiers of items in order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
