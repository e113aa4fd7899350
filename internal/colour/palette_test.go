package colour

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}, want: "#ff0000"},
		{name: "zero padded", rgb: RGB{R: 1, G: 2, B: 3}, want: "#010203"},
		{name: "lowercase", rgb: RGB{R: 0xab, G: 0xcd, B: 0xef}, want: "#abcdef"},
		{name: "black", rgb: RGB{}, want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRGBString(t *testing.T) {
	rgb := RGB{R: 12, G: 34, B: 56}
	if got, want := rgb.String(), "rgb(12, 34, 56)"; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestFormatPaletteTruncatesAndKeepsTotal(t *testing.T) {
	clusters := []Cluster{
		{Centroid: Pixel{R: 255}, Count: 6},
		{Centroid: Pixel{G: 255}, Count: 3},
		{Centroid: Pixel{B: 255}, Count: 1},
	}

	palette := FormatPalette(clusters, 2)

	if palette.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", palette.Len())
	}
	if palette.Total != 10 {
		t.Errorf("Total = %d, want 10", palette.Total)
	}

	want := []PaletteColor{
		{Hex: "#ff0000", RGB: "rgb(255, 0, 0)", CMYK: CMYK{C: 0, M: 100, Y: 100, K: 0}, Count: 6, Share: 0.6, value: RGB{R: 255}},
		{Hex: "#00ff00", RGB: "rgb(0, 255, 0)", CMYK: CMYK{C: 100, M: 0, Y: 100, K: 0}, Count: 3, Share: 0.3, value: RGB{G: 255}},
	}
	for i := range want {
		if palette.Colors[i] != want[i] {
			t.Errorf("Colors[%d] = %+v, want %+v", i, palette.Colors[i], want[i])
		}
	}
}

func TestFormatPaletteSkipsEmptyClusters(t *testing.T) {
	clusters := []Cluster{
		{Centroid: Pixel{R: 10, G: 10, B: 10}, Count: 4},
		{Centroid: Pixel{R: 10, G: 10, B: 10}, Count: 0},
		{Centroid: Pixel{R: 99, G: 10, B: 10}, Count: 0},
	}

	palette := FormatPalette(clusters, 5)

	if palette.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", palette.Len())
	}
	if palette.Colors[0].Share != 1 {
		t.Errorf("Share = %v, want 1", palette.Colors[0].Share)
	}
}

func TestFormatPaletteDefaults(t *testing.T) {
	clusters := make([]Cluster, MaxClusters)
	for i := range clusters {
		clusters[i] = Cluster{Centroid: Pixel{R: uint8(i * 20)}, Count: MaxClusters - i}
	}

	if got := FormatPalette(clusters, 0).Len(); got != DefaultMaxColours {
		t.Errorf("Len() with default max = %d, want %d", got, DefaultMaxColours)
	}
	if got := FormatPalette(nil, 5); got.Len() != 0 || got.Total != 0 {
		t.Errorf("FormatPalette(nil) = %+v, want empty palette", got)
	}
}

func TestFormatPaletteRecordShape(t *testing.T) {
	clusters := newTestKMeans(21).Cluster(noisyPixels(1500, 17), MaxClusters)
	palette := FormatPalette(clusters, MaxClusters)

	for _, c := range palette.Colors {
		if !hexPattern.MatchString(c.Hex) {
			t.Errorf("hex %q does not match %s", c.Hex, hexPattern)
		}
		for _, v := range []int{c.CMYK.C, c.CMYK.M, c.CMYK.Y, c.CMYK.K} {
			if v < 0 || v > 100 {
				t.Errorf("CMYK component %d out of range for %s", v, c.Hex)
			}
		}
		if c.Share < 0 || c.Share > 1 {
			t.Errorf("share %v out of range for %s", c.Share, c.Hex)
		}
		if c.RGB != c.Value().String() {
			t.Errorf("RGB = %s, want %s", c.RGB, c.Value().String())
		}
	}
}

func TestShareRounding(t *testing.T) {
	tests := []struct {
		count, total int
		want         float64
	}{
		{count: 2, total: 3, want: 0.667},
		{count: 1, total: 3, want: 0.333},
		{count: 3, total: 3, want: 1},
		{count: 1, total: 8, want: 0.125},
		{count: 1, total: 0, want: 0},
	}

	for _, tt := range tests {
		if got := share(tt.count, tt.total); got != tt.want {
			t.Errorf("share(%d, %d) = %v, want %v", tt.count, tt.total, got, tt.want)
		}
	}
}

func TestPaletteToHex(t *testing.T) {
	palette := FormatPalette([]Cluster{
		{Centroid: Pixel{R: 255}, Count: 2},
		{Centroid: Pixel{B: 16}, Count: 1},
	}, 5)

	got := palette.ToHex()
	if len(got) != 2 || got[0] != "#ff0000" || got[1] != "#000010" {
		t.Errorf("ToHex() = %v, want [#ff0000 #000010]", got)
	}
}

func TestPaletteToJSON(t *testing.T) {
	palette := FormatPalette([]Cluster{
		{Centroid: Pixel{R: 255}, Count: 2},
		{Centroid: Pixel{G: 255}, Count: 1},
	}, 5)

	data, err := palette.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}

	var decoded struct {
		Total  int `json:"total"`
		Colors []struct {
			Hex   string         `json:"hex"`
			RGB   string         `json:"rgb"`
			CMYK  map[string]int `json:"cmyk"`
			Count int            `json:"count"`
			Share float64        `json:"share"`
		} `json:"colors"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}

	if decoded.Total != 3 {
		t.Errorf("total = %d, want 3", decoded.Total)
	}
	if len(decoded.Colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(decoded.Colors))
	}
	first := decoded.Colors[0]
	if first.Hex != "#ff0000" || first.Count != 2 || first.Share != 0.667 {
		t.Errorf("first color = %+v", first)
	}
	if first.CMYK["m"] != 100 || first.CMYK["k"] != 0 {
		t.Errorf("first color cmyk = %v", first.CMYK)
	}
}

func TestEmptyPaletteToJSON(t *testing.T) {
	data, err := (&Palette{}).ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"colors": []`) {
		t.Errorf("empty palette JSON should contain an empty colors array, got %s", data)
	}
}

func TestPaletteToCSV(t *testing.T) {
	palette := FormatPalette([]Cluster{
		{Centroid: Pixel{R: 255}, Count: 2},
		{Centroid: Pixel{}, Count: 1},
	}, 5)

	data, err := palette.ToCSV()
	if err != nil {
		t.Fatalf("ToCSV() error: %v", err)
	}

	want := strings.Join([]string{
		"hex,rgb,c,m,y,k,count,share",
		`#ff0000,"rgb(255, 0, 0)",0,100,100,0,2,0.667`,
		`#000000,"rgb(0, 0, 0)",0,0,0,100,1,0.333`,
		"",
	}, "\n")
	if string(data) != want {
		t.Errorf("ToCSV() =\n%s\nwant\n%s", data, want)
	}
}

func TestPaletteString(t *testing.T) {
	if got := (&Palette{}).String(); got != "Empty palette" {
		t.Errorf("String() = %q, want %q", got, "Empty palette")
	}

	palette := FormatPalette([]Cluster{{Centroid: Pixel{R: 255}, Count: 1}}, 1)
	if got := palette.String(); !strings.Contains(got, "#ff0000") {
		t.Errorf("String() = %q, want it to contain #ff0000", got)
	}
}

func TestPaletteAll(t *testing.T) {
	palette := FormatPalette([]Cluster{
		{Centroid: Pixel{R: 1}, Count: 3},
		{Centroid: Pixel{R: 2}, Count: 2},
		{Centroid: Pixel{R: 3}, Count: 1},
	}, 3)

	var seen []string
	for _, c := range palette.All() {
		seen = append(seen, c.Hex)
		if len(seen) == 2 {
			break
		}
	}

	if len(seen) != 2 || seen[0] != "#010000" || seen[1] != "#020000" {
		t.Errorf("All() yielded %v", seen)
	}
}
