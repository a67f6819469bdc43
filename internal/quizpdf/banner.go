package quizpdf

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	bannerWidth  = 1200
	bannerHeight = 220
)

var (
	bannerBackground = color.NRGBA{R: 0x1f, G: 0x3a, B: 0x5f, A: 0xff}
	bannerAccent     = color.NRGBA{R: 0xf2, G: 0xa5, B: 0x41, A: 0xff}
)

func loadFontFace(ttf []byte, size float64) (font.Face, error) {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

// RenderBanner draws the quiz title on a header strip and returns it as PNG.
func RenderBanner(title string) ([]byte, error) {
	face, err := loadFontFace(goregular.TTF, 64)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(bannerWidth, bannerHeight)
	dc.SetColor(bannerBackground)
	dc.DrawRoundedRectangle(0, 0, bannerWidth, bannerHeight, 24)
	dc.Fill()

	dc.SetColor(bannerAccent)
	dc.DrawRectangle(0, bannerHeight-16, bannerWidth, 16)
	dc.Fill()

	dc.SetFontFace(face)
	dc.SetColor(color.White)
	dc.DrawStringWrapped(title, bannerWidth/2, bannerHeight/2-8, 0.5, 0.5, bannerWidth-120, 1.2, gg.AlignCenter)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
