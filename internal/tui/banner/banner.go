// Package banner renders a head word as large block art using half-block characters.
package banner

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// fontPaths are tried in order; the first parseable font wins.
var fontPaths = []string{
	// Linux
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	// macOS
	"/System/Library/Fonts/Helvetica.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Windows
	"C:\\Windows\\Fonts\\arialbd.ttf",
}

const (
	padding   = 2
	threshold = uint8(40)
)

// Renderer draws words with one font face and caches the results.
type Renderer struct {
	face  font.Face
	cache map[string]string
}

// New loads the first available system font, falling back to the
// built-in 7x13 bitmap face.
func New() *Renderer {
	for _, path := range fontPaths {
		if face, err := loadFace(path); err == nil {
			return NewWithFace(face)
		}
	}
	return NewWithFace(basicfont.Face7x13)
}

// NewWithFace creates a Renderer for face.
func NewWithFace(face font.Face) *Renderer {
	return &Renderer{face: face, cache: make(map[string]string)}
}

func loadFace(path string) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	opts := &opentype.FaceOptions{Size: 48, DPI: 72, Hinting: font.HintingFull}

	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		fnt, err := coll.Font(0)
		if err != nil {
			return nil, err
		}
		return opentype.NewFace(fnt, opts)
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}
	return opentype.NewFace(fnt, opts)
}

// Render draws word rows cells tall. It returns "" when the word would not
// fit in maxCols columns, so callers can fall back to plain text.
func (r *Renderer) Render(word string, maxCols, rows int) string {
	if word == "" || rows <= 0 || maxCols <= 0 {
		return ""
	}

	key := fmt.Sprintf("%s\x00%d\x00%d", word, maxCols, rows)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	out := r.render(word, maxCols, rows)
	r.cache[key] = out
	return out
}

func (r *Renderer) render(word string, maxCols, rows int) string {
	metrics := r.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	textWidth := font.MeasureString(r.face, word).Ceil()
	textHeight := ascent + metrics.Descent.Ceil()
	if textWidth == 0 || textHeight == 0 {
		return ""
	}

	srcWidth := textWidth + padding*2
	srcHeight := textHeight + padding*2

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P(padding, padding+ascent),
	}
	d.DrawString(word)

	// keep the aspect ratio; a cell holds two vertical pixels
	targetHeight := rows * 2
	cols := srcWidth * targetHeight / srcHeight
	if cols > maxCols {
		return ""
	}
	if cols < 1 {
		cols = 1
	}

	return toHalfBlocks(scale(src, cols, targetHeight), cols, rows)
}

// scale resamples src by area averaging, or nearest pixel when enlarging.
func scale(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Max.X
	srcHeight := src.Bounds().Max.Y

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := max(int(float64(dx+1)*xRatio), sx1+1)
			sy2 := max(int(float64(dy+1)*yRatio), sy1+1)
			sx2 = min(sx2, srcWidth)
			sy2 = min(sy2, srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

func toHalfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold

			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}

	return b.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Bounds().Max.X || y >= img.Bounds().Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}
