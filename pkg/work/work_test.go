package work

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/folio/pkg/errors"
)

func TestDeriveIDStable(t *testing.T) {
	a := DeriveID("Showreel", "https://youtu.be/abc123")
	b := DeriveID("Showreel", "https://youtu.be/abc123")
	if a != b {
		t.Errorf("DeriveID not deterministic: %q vs %q", a, b)
	}
	if c := DeriveID("Showreel", "https://youtu.be/other1"); c == a {
		t.Error("different media should derive a different id")
	}
	if err := errors.ValidateItemID(a); err != nil {
		t.Errorf("derived id %q invalid: %v", a, err)
	}
}

func TestDisplayPlaceholders(t *testing.T) {
	var it Item
	if it.DisplayName() != PlaceholderName {
		t.Errorf("DisplayName() = %q, want %q", it.DisplayName(), PlaceholderName)
	}
	if it.DisplayDescription() != PlaceholderDescription {
		t.Errorf("DisplayDescription() = %q, want %q", it.DisplayDescription(), PlaceholderDescription)
	}

	it = Item{Name: "Poster", Description: "Print"}
	if it.DisplayName() != "Poster" || it.DisplayDescription() != "Print" {
		t.Errorf("display = %q/%q", it.DisplayName(), it.DisplayDescription())
	}
}

func TestFingerprint(t *testing.T) {
	items := []Item{
		{ID: "a", Media: "https://example.com/a.png", Name: "A"},
		{ID: "b", Media: "video.mp4", Name: "B"},
	}

	if Fingerprint(items) != Fingerprint(append([]Item(nil), items...)) {
		t.Error("equal lists should have equal fingerprints")
	}

	swapped := []Item{items[1], items[0]}
	if Fingerprint(items) == Fingerprint(swapped) {
		t.Error("order should change the fingerprint")
	}

	edited := append([]Item(nil), items...)
	edited[1].Description = "now with text"
	if Fingerprint(items) == Fingerprint(edited) {
		t.Error("content edits should change the fingerprint")
	}

	// Field boundaries are length-prefixed.
	x := []Item{{ID: "ab", Media: "c"}}
	y := []Item{{ID: "a", Media: "bc"}}
	if Fingerprint(x) == Fingerprint(y) {
		t.Error("shifting bytes between fields should change the fingerprint")
	}

	if Fingerprint(nil) != Fingerprint([]Item{}) {
		t.Error("nil and empty lists should match")
	}
}

func TestNormalize(t *testing.T) {
	items, err := Normalize([]Item{
		{ID: " a ", Media: " https://example.com/a.png ", Name: " A "},
		{Name: "Derived", Media: "video.mp4"},
	})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}

	if items[0].ID != "a" || items[0].Media != "https://example.com/a.png" || items[0].Name != "A" {
		t.Errorf("fields not trimmed: %+v", items[0])
	}
	if items[1].ID != DeriveID("Derived", "video.mp4") {
		t.Errorf("derived id = %q", items[1].ID)
	}
}

func TestNormalizeRepeatedItemsWithoutID(t *testing.T) {
	in := []Item{
		{Name: "Same", Media: "a.png"},
		{ID: "other", Name: "Other"},
		{Name: "Same", Media: "a.png"},
		{Name: "Same", Media: "a.png"},
	}

	items, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	base := DeriveID("Same", "a.png")
	want := []string{base, "other", base + "-2", base + "-3"}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, id)
		}
	}

	again, _ := Normalize(in)
	for i := range items {
		if again[i].ID != items[i].ID {
			t.Errorf("items[%d].ID not stable across loads: %q vs %q", i, items[i].ID, again[i].ID)
		}
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		code  errors.Code
	}{
		{
			name:  "duplicate explicit ids",
			items: []Item{{ID: "x"}, {ID: "x"}},
			code:  errors.ErrCodeDuplicateID,
		},
		{
			name:  "explicit id equal to a derived id",
			items: []Item{{Name: "Same", Media: "a.png"}, {ID: DeriveID("Same", "a.png")}},
			code:  errors.ErrCodeDuplicateID,
		},
		{
			name:  "whitespace id",
			items: []Item{{ID: "has space"}},
			code:  errors.ErrCodeInvalidContent,
		},
		{
			name:  "javascript media",
			items: []Item{{ID: "x", Media: "javascript:alert(1)"}},
			code:  errors.ErrCodeInvalidContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.items)
			if !errors.Is(err, tt.code) {
				t.Errorf("Normalize error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantIDs []string
		media   []string
	}{
		{
			name:    "bare array",
			input:   `[{"id":"a","name":"A","media":"https://example.com/a.png"}]`,
			wantIDs: []string{"a"},
			media:   []string{"https://example.com/a.png"},
		},
		{
			name: "projects with aliases",
			input: `{"projects":[
				{"id":1,"title":"One","imageSrc":"https://youtu.be/abc123"},
				{"id":"2","name":"Two","img":"/two.png"},
				{"id":3,"name":"Three","image":"/three.png"},
				{"id":4,"name":"Four"}
			]}`,
			wantIDs: []string{"1", "2", "3", "4"},
			media:   []string{"https://youtu.be/abc123", "/two.png", "/three.png", ""},
		},
		{
			name:    "media takes precedence over aliases",
			input:   `{"work":[{"id":"w","media":"video.mp4","imageSrc":"/ignored.png"}]}`,
			wantIDs: []string{"w"},
			media:   []string{"video.mp4"},
		},
		{
			name:    "empty object",
			input:   `{}`,
			wantIDs: []string{},
			media:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ReadJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadJSON error: %v", err)
			}
			ids := IDs(items)
			if strings.Join(ids, ",") != strings.Join(tt.wantIDs, ",") {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
			for i, it := range items {
				if it.Media != tt.media[i] {
					t.Errorf("item %d media = %q, want %q", i, it.Media, tt.media[i])
				}
			}
		})
	}
}

func TestReadJSONTitleAlias(t *testing.T) {
	items, err := ReadJSON(strings.NewReader(`[{"id":"a","title":"From Title"}]`))
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if items[0].Name != "From Title" {
		t.Errorf("Name = %q, want title alias", items[0].Name)
	}
}

func TestReadJSONErrors(t *testing.T) {
	for _, input := range []string{``, `{`, `[{"id":true}]`, `"string"`} {
		if _, err := ReadJSON(strings.NewReader(input)); err == nil {
			t.Errorf("ReadJSON(%q) should fail", input)
		}
	}
}

func TestReadTOML(t *testing.T) {
	input := `
[[work]]
id = "reel"
name = "Showreel"
media = "https://youtu.be/abc123"

[[work]]
name = "Poster"
description = "Screen print"
media = "https://example.com/poster.png"
`
	items, err := ReadTOML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTOML error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "reel" {
		t.Errorf("items[0].ID = %q", items[0].ID)
	}
	if items[1].ID != DeriveID("Poster", "https://example.com/poster.png") {
		t.Errorf("items[1].ID = %q, want derived", items[1].ID)
	}
	if items[1].Description != "Screen print" {
		t.Errorf("items[1].Description = %q", items[1].Description)
	}
}

func TestReadTOMLError(t *testing.T) {
	_, err := ReadTOML(strings.NewReader("[[work]\nid = "))
	if !errors.Is(err, errors.ErrCodeInvalidContent) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidContent)
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "portfolio.json")
	if err := os.WriteFile(jsonPath, []byte(`{"projects":[{"id":"a","name":"A"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err := Import(jsonPath)
	if err != nil || len(items) != 1 {
		t.Fatalf("Import(json) = %v, %v", items, err)
	}

	tomlPath := filepath.Join(dir, "works.toml")
	if err := os.WriteFile(tomlPath, []byte("[[work]]\nid = \"b\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err = Import(tomlPath)
	if err != nil || len(items) != 1 || items[0].ID != "b" {
		t.Fatalf("Import(toml) = %v, %v", items, err)
	}

	yamlPath := filepath.Join(dir, "works.yaml")
	if err := os.WriteFile(yamlPath, []byte("work: []"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Import(yamlPath); !errors.Is(err, errors.ErrCodeInvalidContent) {
		t.Errorf("Import(yaml) error = %v, want %v", err, errors.ErrCodeInvalidContent)
	}

	if _, err := Import(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}
