package attach

import (
	"bytes"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// Preview renders a low-resolution terminal preview of a JPEG/PNG
// attachment using half-block cells, two vertical pixels per row. DICOM
// attachments and undecodable data yield "", and the caller falls back to a
// textual description. The result depends only on the attachment bytes and
// the requested width.
func (a *Attachment) Preview(maxWidth int) string {
	if a.Format == FormatDICOM || maxWidth < 2 {
		return ""
	}

	src, _, err := image.Decode(bytes.NewReader(a.Data))
	if err != nil {
		return ""
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return ""
	}

	w := maxWidth
	if bounds.Dx() < w {
		w = bounds.Dx()
	}
	// Terminal cells are roughly twice as tall as wide; half blocks restore
	// a square-ish aspect with two image rows per text row.
	h := bounds.Dy() * w / bounds.Dx()
	if h < 2 {
		h = 2
	}
	if h%2 != 0 {
		h++
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)

	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := cellColor(scaled, x, y)
			bottom := cellColor(scaled, x, y+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(top).
				Background(bottom).
				Render("▀"))
		}
		if y+2 < h {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func cellColor(img *image.RGBA, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(rgbHex(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}

const hexDigits = "0123456789abcdef"

func rgbHex(r, g, b uint8) string {
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, c := range []uint8{r, g, b} {
		buf[1+i*2] = hexDigits[c>>4]
		buf[2+i*2] = hexDigits[c&0x0f]
	}
	return string(buf)
}
