package colour

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultMaxColours is the default number of palette entries returned.
const DefaultMaxColours = 10

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// PaletteColor is a single palette entry ready for presentation.
type PaletteColor struct {
	Hex   string  `json:"hex"`
	RGB   string  `json:"rgb"`
	CMYK  CMYK    `json:"cmyk"`
	Count int     `json:"count"`
	Share float64 `json:"share"`

	value RGB
}

// Value returns the entry's colour.
func (pc PaletteColor) Value() RGB {
	return pc.value
}

// Palette is an ordered list of palette entries, most common first.
// Total is the sampled population the shares were computed over.
type Palette struct {
	Colors []PaletteColor `json:"colors"`
	Total  int            `json:"total"`
}

// FormatPalette converts clusters, already sorted by descending count, into
// at most maxColors palette entries. Clusters without members are skipped.
// Shares are relative to the members of every cluster passed in, not just
// the retained ones. A maxColors of zero or less uses DefaultMaxColours.
func FormatPalette(clusters []Cluster, maxColors int) *Palette {
	if maxColors <= 0 {
		maxColors = DefaultMaxColours
	}

	total := 0
	for _, c := range clusters {
		total += c.Count
	}

	colors := make([]PaletteColor, 0, min(maxColors, len(clusters)))
	for _, c := range clusters {
		if len(colors) == maxColors {
			break
		}
		if c.Count == 0 {
			continue
		}
		rgb := c.Centroid.RGB()
		colors = append(colors, PaletteColor{
			Hex:   rgb.Hex(),
			RGB:   rgb.String(),
			CMYK:  ToCMYK(rgb),
			Count: c.Count,
			Share: share(c.Count, total),
			value: rgb,
		})
	}

	return &Palette{Colors: colors, Total: total}
}

// share returns count/total rounded to three decimal places.
func share(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 1000
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// All returns an iterator over all entries in the palette.
func (p *Palette) All() func(func(int, PaletteColor) bool) {
	return func(yield func(int, PaletteColor) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}

// ToHex returns the hex strings of all entries.
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = c.Hex
	}
	return hexColors
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	out := *p
	if out.Colors == nil {
		out.Colors = []PaletteColor{}
	}
	return json.MarshalIndent(out, "", "  ")
}

// ToCSV renders the palette as CSV with a header row.
func (p *Palette) ToCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"hex", "rgb", "c", "m", "y", "k", "count", "share"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, c := range p.Colors {
		record := []string{
			c.Hex,
			c.RGB,
			strconv.Itoa(c.CMYK.C),
			strconv.Itoa(c.CMYK.M),
			strconv.Itoa(c.CMYK.Y),
			strconv.Itoa(c.CMYK.K),
			strconv.Itoa(c.Count),
			strconv.FormatFloat(c.Share, 'f', 3, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// String returns a human-readable representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colors (%d pixels sampled):\n", len(p.Colors), p.Total)
	for i, c := range p.Colors {
		fmt.Fprintf(&sb, "  %2d: %s %-20s %-18s %5.1f%%\n", i+1, c.Hex, c.RGB, c.CMYK.String(), c.Share*100)
	}
	return sb.String()
}
