package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Output formats.
const (
	formatText  = "text"
	formatHex   = "hex"
	formatRGB   = "rgb"
	formatJSON  = "json"
	formatCSV   = "csv"
	formatTable = "table"
)

// Preview modes.
const (
	previewAuto   = "auto"
	previewAlways = "always"
	previewNever  = "never"
)

const previewWidth = 6

func validFormats() []string {
	return []string{formatText, formatHex, formatRGB, formatJSON, formatCSV, formatTable}
}

func isValidFormat(format string) bool {
	return slices.Contains(validFormats(), format)
}

func isValidPreview(mode string) bool {
	return mode == previewAuto || mode == previewAlways || mode == previewNever
}

// wantPreview decides whether to draw ANSI swatches. Machine-readable
// formats and file output never get them; auto mode requires a terminal.
func wantPreview(mode, format, output string, out io.Writer) bool {
	if format == formatJSON || format == formatCSV || output != "" {
		return false
	}
	switch mode {
	case previewAlways:
		return true
	case previewNever:
		return false
	}

	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// formatPalette renders the palette in the requested format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case formatText:
		return formatTextPalette(palette, showPreview), nil
	case formatHex:
		if showPreview {
			return formatLines(palette, showPreview, func(c colour.PaletteColor) string { return c.Hex }), nil
		}
		var sb strings.Builder
		for _, hex := range palette.ToHex() {
			sb.WriteString(hex)
			sb.WriteString("\n")
		}
		return sb.String(), nil
	case formatRGB:
		return formatLines(palette, showPreview, func(c colour.PaletteColor) string { return c.RGB }), nil
	case formatJSON:
		data, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case formatCSV:
		data, err := palette.ToCSV()
		if err != nil {
			return "", fmt.Errorf("failed to convert to CSV: %w", err)
		}
		return string(data), nil
	case formatTable:
		return formatTablePalette(palette, showPreview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %v)", format, validFormats())
	}
}

func formatTextPalette(palette *colour.Palette, showPreview bool) string {
	if !showPreview || palette.Len() == 0 {
		return palette.String()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colors (%d pixels sampled):\n", palette.Len(), palette.Total)
	for i, c := range palette.All() {
		fmt.Fprintf(&sb, "  %2d: %s  %-20s %5.1f%%\n", i+1, colour.FormatColourWithPreview(c.Value(), previewWidth), c.RGB, c.Share*100)
	}
	return sb.String()
}

func formatLines(palette *colour.Palette, showPreview bool, field func(colour.PaletteColor) string) string {
	var sb strings.Builder
	for _, c := range palette.All() {
		if showPreview {
			sb.WriteString(colour.ColourPreview(c.Value(), previewWidth))
			sb.WriteString(" ")
		}
		sb.WriteString(field(c))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatTablePalette(palette *colour.Palette, showPreview bool) string {
	headers := []string{"#", "Hex", "RGB", "CMYK", "Count", "Share"}
	if showPreview {
		headers = append([]string{""}, headers...)
	}

	table := NewTable(headers)
	offset := len(headers) - 6
	table.AlignRight(offset)
	table.AlignRight(offset + 4)
	table.AlignRight(offset + 5)

	for i, c := range palette.All() {
		row := []string{
			strconv.Itoa(i + 1),
			c.Hex,
			c.RGB,
			fmt.Sprintf("%d/%d/%d/%d", c.CMYK.C, c.CMYK.M, c.CMYK.Y, c.CMYK.K),
			strconv.Itoa(c.Count),
			strconv.FormatFloat(c.Share, 'f', 3, 64),
		}
		if showPreview {
			row = append([]string{colour.ColourPreviewWithText(c.Value(), c.Hex, 9)}, row...)
		}
		table.AddRow(row)
	}

	return table.Render()
}
