// Package layout computes slot positions for the sharepic card stack.
//
// A Slot is the fixed-size rectangle one team's card is drawn into. Slots
// share a canvas-wide width and height; only the vertical offset differs.
// Compute places n slots symmetrically around the vertical midpoint of a
// bounded region and fails hard when the stack would overflow it.
package layout

import (
	"fmt"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
)

// Slot is a rectangle allocated to one card. All coordinates are in
// canvas units with the origin at the top-left corner.
type Slot struct {
	X, Y float64
	W, H float64
}

// Bottom returns the y coordinate of the slot's lower edge.
func (s Slot) Bottom() float64 { return s.Y + s.H }

// CenterY returns the vertical center of the slot.
func (s Slot) CenterY() float64 { return s.Y + s.H/2 }

// CenterX returns the horizontal center of the slot.
func (s Slot) CenterX() float64 { return s.X + s.W/2 }

// mmToUnits converts millimetres to device units at 96 DPI.
const mmToUnits = 96.0 / 25.4

// Metrics is the single layout-constants table for the canvas. Every
// hand-tuned offset the renderer uses lives here so the drawing code
// stays data-driven. All fields are in device units unless named *Frac,
// which are fractions of the canvas dimension they anchor against.
type Metrics struct {
	CanvasW float64
	CanvasH float64

	SlotW   float64
	SlotH   float64
	SlotPad float64

	// Card column anchors, as fractions of the canvas width.
	TeamXFrac     float64 // team label, left-aligned
	DateXFrac     float64 // date column, left-aligned
	OpponentXFrac float64 // opponent column, left-aligned
	VSXFrac       float64 // center of the "vs" glyph
	ColonXFrac    float64 // colon anchor for score pairs
	ValueXFrac    float64 // right edge for time values

	// Vertical anchors, as fractions of the canvas height.
	HeadlineFrac float64 // baseline of the main headline
	FooterFrac   float64 // baseline of the footer line
	BottomFrac   float64 // lower bound of the slot region

	LogoW float64 // logo raster width
	LogoY float64 // logo distance from the top edge
}

// Default returns the metrics for the 1080x1350 portrait sharepic.
func Default() Metrics {
	const w, h = 1080.0, 1350.0
	return Metrics{
		CanvasW: w,
		CanvasH: h,

		SlotW:   (1 - 4.0/30.0) * w,
		SlotH:   30 * mmToUnits,
		SlotPad: w / 30,

		TeamXFrac:     0.09,
		DateXFrac:     0.24,
		OpponentXFrac: 0.42,
		VSXFrac:       0.37,
		ColonXFrac:    0.85,
		ValueXFrac:    0.91,

		HeadlineFrac: 0.25,
		FooterFrac:   0.93,
		BottomFrac:   315 * mmToUnits / h,

		LogoW: 200,
		LogoY: 70,
	}
}

// OverflowError reports that a slot stack does not fit between its vertical
// bounds. The stack is never silently shrunk; callers must reduce the slot
// count or the configured slot height.
type OverflowError struct {
	N         int     // number of slots requested
	Max       int     // largest slot count that would fit
	Bottom    float64 // lower bound the stack must stay above
	LowerEdge float64 // y of the lowest slot's bottom edge
}

// Error implements the error interface.
func (e *OverflowError) Error() string {
	return fmt.Sprintf(
		"stack of %d slots ends at y=%.2f, overflowing the lower bound y=%.2f by %.2f units (at most %d fit)",
		e.N, e.LowerEdge, e.Bottom, e.Overshoot(), e.Max)
}

// Overshoot returns how far the stack extends past the lower bound.
func (e *OverflowError) Overshoot() float64 { return e.LowerEdge - e.Bottom }

// Code returns the error code for this error type.
func (e *OverflowError) Code() apperrors.Code { return apperrors.ErrCodeLayoutOverflow }

// Compute places n slots between topY and bottomY, vertically centered as a
// group and evenly spaced by SlotPad. Slots are returned in top-to-bottom
// order. For odd n the middle slot straddles the region's midpoint; for
// even n the midpoint falls inside the padding between the two middle
// slots.
//
// n = 0 yields an empty sequence. A stack taller than the region is a
// fatal *OverflowError, not a clamp.
func (m Metrics) Compute(n int, topY, bottomY float64) ([]Slot, error) {
	if n < 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "slot count must not be negative, got %d", n)
	}
	if topY >= bottomY {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "slot region is empty: topY %.2f >= bottomY %.2f", topY, bottomY)
	}
	if n == 0 {
		return nil, nil
	}

	half := float64(n) / 2
	padsAboveCenter := half - 0.5
	center := topY + (bottomY-topY)/2
	startY := center - (half*m.SlotH + padsAboveCenter*m.SlotPad)

	slots := make([]Slot, n)
	x := (m.CanvasW - m.SlotW) / 2
	y := startY
	for i := range slots {
		slots[i] = Slot{X: x, Y: y, W: m.SlotW, H: m.SlotH}
		y += m.SlotH + m.SlotPad
	}

	if lower := slots[n-1].Bottom(); lower > bottomY {
		return nil, &OverflowError{N: n, Max: m.MaxSlots(topY, bottomY), Bottom: bottomY, LowerEdge: lower}
	}
	return slots, nil
}

// MaxSlots returns the largest slot count that fits between topY and
// bottomY at these metrics. Useful for diagnostics on overflow.
func (m Metrics) MaxSlots(topY, bottomY float64) int {
	span := bottomY - topY
	if span < m.SlotH {
		return 0
	}
	return 1 + int((span-m.SlotH)/(m.SlotH+m.SlotPad))
}
