package colour

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns a solid truecolour block width characters wide.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText returns a colour block with centred text drawn in
// black or white, whichever reads better on the background.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var fg RGB
	if !IsLight(c) {
		fg = RGB{R: 255, G: 255, B: 255}
	}

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgCode := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)
	return bg + fgCode + displayText + ansiReset
}

// IsLight reports whether a colour's CIE L* lightness is above the midpoint.
func IsLight(c RGB) bool {
	l, _, _ := toColorful(c).Lab()
	return l > 0.5
}

// FormatColourWithPreview formats a colour with its preview and hex code.
func FormatColourWithPreview(rgb RGB, width int) string {
	return fmt.Sprintf("%s %s", ColourPreview(rgb, width), rgb.Hex())
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
