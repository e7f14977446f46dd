package sink

import (
	"fmt"
	"image/color"
	"strings"
)

// mustHex parses "#rgb" or "#rrggbb". Only used with package constants.
func mustHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		panic("sink: bad colour " + s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
