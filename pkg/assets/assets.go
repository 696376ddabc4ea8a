// Package assets loads the static inputs of a render pass: background
// raster, logo and "vs" vector glyphs, and the font face.
//
// Loading happens once, up front, before any drawing begins. A missing or
// unreadable asset is a fatal configuration error (ASSET_LOAD), never a
// silently skipped layer.
package assets

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
)

// Paths names the asset files for one render configuration.
type Paths struct {
	Background string // raster image (JPEG/PNG)
	Logo       string // SVG, rasterized at LogoWidth
	VSGlyph    string // SVG, rasterized at VSWidth
	FontName   string // font family name resolved via the system font dirs
	FontFile   string // optional explicit TTF path, takes precedence
}

// Bundle holds the loaded, render-ready assets for one pass.
type Bundle struct {
	Background image.Image
	Logo       image.Image
	VSGlyph    image.Image
	Font       *Font
}

// Load reads every asset in p. logoWidth and vsWidth are the raster
// widths the vector assets are materialized at; heights follow each
// icon's aspect ratio.
func Load(p Paths, logoWidth, vsWidth int) (*Bundle, error) {
	bg, err := imaging.Open(p.Background, imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeAssetLoad, err, "open background %s", p.Background)
	}

	logo, err := RasterizeSVG(p.Logo, logoWidth)
	if err != nil {
		return nil, err
	}

	vs, err := RasterizeSVG(p.VSGlyph, vsWidth)
	if err != nil {
		return nil, err
	}

	font, err := LoadFont(p.FontName, p.FontFile)
	if err != nil {
		return nil, err
	}

	return &Bundle{Background: bg, Logo: logo, VSGlyph: vs, Font: font}, nil
}

// RasterizeSVG renders the SVG file at path into an RGBA image of the
// given width, keeping the icon's aspect ratio.
func RasterizeSVG(path string, width int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeAssetLoad, err, "open svg %s", path)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeAssetLoad, err, "parse svg %s", path)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeAssetLoad, "svg %s has no usable viewBox", path)
	}

	height := int(float64(width) * icon.ViewBox.H / icon.ViewBox.W)
	if height < 1 {
		height = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}
