package masonry

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/folio/pkg/media"
	"github.com/matzehuels/folio/pkg/work"
)

// Layout is the serialization format of a layout pass, used by the JSON API and
// the layout command.
type Layout struct {
	Width       float64    `json:"width"`
	ColumnWidth float64    `json:"column_width"`
	Gutter      float64    `json:"gutter,omitempty"`
	Heights     [2]float64 `json:"heights"`
	Columns     [2][]Card  `json:"columns"`
	ETag        string     `json:"etag,omitempty"`
}

// Card is one positioned item in a serialized layout.
type Card struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Media       string     `json:"media,omitempty"`
	Kind        media.Kind `json:"kind"`
	Top         float64    `json:"top"`
	Height      float64    `json:"height"`
}

// Export converts a pass into its serialization format. Estimates are rounded
// to two decimals.
func (c Columns) Export() Layout {
	l := Layout{
		Width:       c.Width,
		ColumnWidth: round2(c.ColumnWidth),
		Gutter:      c.Gutter,
		Heights:     [2]float64{round2(c.Heights[0]), round2(c.Heights[1])},
		Columns:     [2][]Card{{}, {}},
	}

	for _, p := range c.Placements {
		it := c.Items[p.Column][p.Index]
		l.Columns[p.Column] = append(l.Columns[p.Column], Card{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Media:       it.Media,
			Kind:        p.Kind,
			Top:         round2(p.Top),
			Height:      round2(p.Height),
		})
	}
	return l
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// ETag returns a strong entity tag for a layout of items at a container width.
// The width must already be normalized.
func ETag(items []work.Item, width float64) string {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.FormatUint(work.Fingerprint(items), 16))
	_, _ = d.WriteString("@")
	_, _ = d.WriteString(strconv.FormatFloat(width, 'g', -1, 64))
	return `"` + strconv.FormatUint(d.Sum64(), 16) + `"`
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// UnmarshalLayout deserializes a Layout from JSON bytes.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, err
	}
	return l, nil
}
