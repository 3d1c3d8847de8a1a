package work

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/folio/pkg/errors"
)

// Import reads the content file at path. The format is chosen by extension:
// .toml or .json.
func Import(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "content file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var items []Item
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		items, err = ReadTOML(f)
	case ".json":
		items, err = ReadJSON(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidContent, "unsupported content file extension %q (want .toml or .json)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// tomlContent is the TOML content layout: an array of [[work]] tables.
type tomlContent struct {
	Work []Item `toml:"work"`
}

// ReadTOML decodes [[work]] tables from r and normalizes the result.
func ReadTOML(r io.Reader) ([]Item, error) {
	var c tomlContent
	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidContent, err, "decode toml")
	}
	return Normalize(c.Work)
}

// jsonItem accepts the field aliases found in portfolio data files.
type jsonItem struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Media       string          `json:"media"`
	ImageSrc    string          `json:"imageSrc"`
	Img         string          `json:"img"`
	Image       string          `json:"image"`
}

func (j jsonItem) item() (Item, error) {
	id, err := rawID(j.ID)
	if err != nil {
		return Item{}, err
	}
	return Item{
		ID:          id,
		Name:        firstNonEmpty(j.Name, j.Title),
		Description: j.Description,
		Media:       firstNonEmpty(j.Media, j.ImageSrc, j.Img, j.Image),
	}, nil
}

// ReadJSON decodes items from r. The document is either an array of items or an
// object holding them under "projects" or "work".
func ReadJSON(r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var raw []jsonItem
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidContent, err, "decode json")
		}
	} else {
		var doc struct {
			Projects []jsonItem `json:"projects"`
			Work     []jsonItem `json:"work"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidContent, err, "decode json")
		}
		raw = append(doc.Projects, doc.Work...)
	}

	items := make([]Item, 0, len(raw))
	for i, j := range raw {
		it, err := j.item()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return Normalize(items)
}

// rawID accepts string and numeric ids.
func rawID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", errors.New(errors.ErrCodeInvalidContent, "id must be a string or number, got %s", raw)
}

// Normalize trims fields, derives missing IDs and validates the list. It returns
// a new slice; items is not modified.
//
// Items without an ID that share a name and media URL get the derived ID with an
// occurrence suffix ("-2", "-3", ...) in input order. Explicit IDs must be unique.
func Normalize(items []Item) ([]Item, error) {
	out := make([]Item, len(items))
	seen := make(map[string]int, len(items))
	derived := make(map[string]int)

	for i, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		it.Media = strings.TrimSpace(it.Media)
		it.Name = strings.TrimSpace(it.Name)
		it.Description = strings.TrimSpace(it.Description)

		if it.ID == "" {
			base := DeriveID(it.Name, it.Media)
			derived[base]++
			it.ID = base
			if n := derived[base]; n > 1 {
				it.ID = base + "-" + strconv.Itoa(n)
			}
		}
		if err := errors.ValidateItemID(it.ID); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if err := errors.ValidateMediaURL(it.Media); err != nil {
			return nil, fmt.Errorf("item %s: %w", it.ID, err)
		}
		if prev, ok := seen[it.ID]; ok {
			return nil, errors.New(errors.ErrCodeDuplicateID, "items %d and %d share id %q", prev, i, it.ID)
		}
		seen[it.ID] = i
		out[i] = it
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
