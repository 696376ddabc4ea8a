// Package canvas owns the drawing surface for one render pass and the
// background layer pair it composites cards against.
//
// The background exists in two variants: the sharp original, painted once
// as the page background, and a blurred, brightened copy that shows
// through the translucent card panels ("frosted glass"). Both variants
// are materialized once at construction; panel draws only clip and paint.
package canvas

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/young-islanders/sharepic/pkg/layout"
)

const (
	// blurSigma is the Gaussian blur applied to the frosted variant.
	blurSigma = 5.0
	// brightenPct lightens the blurred variant so frost overlays read
	// as glass rather than fog.
	brightenPct = 60.0

	frostFillAlpha   = 0.6
	frostStrokeAlpha = 0.4
	frostStrokeWidth = 2.0
)

// Canvas is the drawing surface for a single render pass. It is not safe
// for concurrent use; independent passes must each own their own Canvas.
type Canvas struct {
	dc      *gg.Context
	w, h    int
	sharp   image.Image
	blurred image.Image
}

// New creates a canvas of the given dimensions and prepares the
// background pair from bg. The source is scaled and center-cropped to
// cover the canvas before the blurred variant is derived.
func New(w, h int, bg image.Image) *Canvas {
	sharp := imaging.Fill(bg, w, h, imaging.Center, imaging.Lanczos)
	blurred := imaging.AdjustBrightness(imaging.Blur(sharp, blurSigma), brightenPct)

	dc := gg.NewContext(w, h)
	dc.DrawImage(sharp, 0, 0)

	return &Canvas{dc: dc, w: w, h: h, sharp: sharp, blurred: blurred}
}

// Context exposes the underlying drawing context for text and image
// painting by the renderer.
func (c *Canvas) Context() *gg.Context { return c.dc }

// Image returns the composited surface.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// Scoped runs fn with the context state (color, line width) saved before
// and restored after, on every exit path. gg's Pop keeps the current clip
// mask rather than restoring the saved one, so the clip is explicitly
// cleared on exit. Panel and glyph draws use it so no drawing state leaks
// between slots.
func (c *Canvas) Scoped(fn func(dc *gg.Context)) {
	c.dc.Push()
	defer func() {
		c.dc.Pop()
		c.dc.ResetClip()
	}()
	fn(c.dc)
}

// DrawFrostedPanel paints a frosted-glass card over the slot rectangle:
// the blurred-bright background clipped to the slot, a translucent white
// fill, and a translucent border stroke. Side effects are confined to the
// slot rectangle and its border.
func (c *Canvas) DrawFrostedPanel(s layout.Slot) {
	c.Scoped(func(dc *gg.Context) {
		dc.DrawRectangle(s.X, s.Y, s.W, s.H)
		dc.Clip()
		// The blurred layer is painted at its absolute canvas position so
		// the frost aligns with the background behind it.
		dc.DrawImage(c.blurred, 0, 0)
		// Clear the clip before fill and stroke: the border straddles the
		// slot edge, and a still-active clip would cut its outer half.
		dc.ResetClip()

		dc.SetRGBA(1, 1, 1, frostFillAlpha)
		dc.DrawRectangle(s.X, s.Y, s.W, s.H)
		dc.Fill()

		dc.SetRGBA(1, 1, 1, frostStrokeAlpha)
		dc.SetLineWidth(frostStrokeWidth)
		dc.DrawRectangle(s.X, s.Y, s.W, s.H)
		dc.Stroke()
	})
}

// DrawPlainPanel paints an opaque white card over the slot rectangle.
// Lighter-weight variant used by render modes without the glass effect.
func (c *Canvas) DrawPlainPanel(s layout.Slot) {
	c.Scoped(func(dc *gg.Context) {
		dc.SetRGB(1, 1, 1)
		dc.DrawRectangle(s.X, s.Y, s.W, s.H)
		dc.Fill()
	})
}
