// Package text lays out and draws blocks of text inside card slots.
//
// A block is one or more lines that are vertically centered as a group
// within a slot's vertical span. The baseline math depends only on the
// font face metrics and the line count, so cards with one row and cards
// with three rows stay visually aligned with each other.
package text

import (
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
)

// LineSpacing is the fixed vertical gap between lines of one block,
// in device units.
const LineSpacing = 8.0

// BlockMetrics describes where a block of k lines sits inside a slot.
type BlockMetrics struct {
	Ascent      float64 // distance from baseline to the top of a line
	Descent     float64 // distance from baseline to the bottom of a line
	LineHeight  float64 // Ascent + Descent
	TotalHeight float64 // k*LineHeight + (k-1)*LineSpacing
	StartY      float64 // top edge of the centered block
}

// Baseline returns the baseline y position of line i.
func (b BlockMetrics) Baseline(i int) float64 {
	return b.StartY + float64(i)*(b.LineHeight+LineSpacing) + b.Ascent
}

// MeasureBlock computes the placement of a k-line block that is vertically
// centered between slotTop and slotTop+slotH. The same face and line count
// always produce the same relative placement within a slot.
func MeasureBlock(face font.Face, k int, slotTop, slotH float64) BlockMetrics {
	m := face.Metrics()
	b := BlockMetrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
	}
	b.LineHeight = b.Ascent + b.Descent
	b.TotalHeight = float64(k)*b.LineHeight + float64(k-1)*LineSpacing
	b.StartY = slotTop + (slotH-b.TotalHeight)/2
	return b
}

// Advance returns the horizontal advance width of s in the given face.
func Advance(face font.Face, s string) float64 {
	return fromFixed(font.MeasureString(face, s))
}

// Ascent returns the face's ascent in device units.
func Ascent(face font.Face) float64 {
	return fromFixed(face.Metrics().Ascent)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Writer draws text blocks onto a drawing context. The slot height is
// fixed per canvas, so it is captured once at construction.
type Writer struct {
	dc    *gg.Context
	slotH float64
}

// NewWriter creates a Writer drawing onto dc, for slots of height slotH.
func NewWriter(dc *gg.Context, slotH float64) *Writer {
	return &Writer{dc: dc, slotH: slotH}
}

// WriteBlock draws lines as one vertically centered block inside the slot
// starting at slotTop, with every line left-aligned at x.
func (w *Writer) WriteBlock(lines []string, x, slotTop float64, face font.Face) error {
	if len(lines) == 0 {
		return nil
	}
	xs := make([]float64, len(lines))
	for i := range xs {
		xs[i] = x
	}
	return w.WriteBlockAt(lines, xs, slotTop, face)
}

// WriteBlockAt is like WriteBlock but anchors each line at its own x
// position. len(xs) must equal len(lines).
func (w *Writer) WriteBlockAt(lines []string, xs []float64, slotTop float64, face font.Face) error {
	if len(xs) != len(lines) {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"got %d x positions for %d lines", len(xs), len(lines))
	}
	if len(lines) == 0 {
		return nil
	}

	m := MeasureBlock(face, len(lines), slotTop, w.slotH)
	w.dc.SetFontFace(face)
	for i, line := range lines {
		w.dc.DrawString(line, xs[i], m.Baseline(i))
	}
	return nil
}

// WriteBlockRightAligned draws a block with each line's right edge at
// rightX.
func (w *Writer) WriteBlockRightAligned(lines []string, rightX, slotTop float64, face font.Face) error {
	xs := make([]float64, len(lines))
	for i, line := range lines {
		xs[i] = rightX - Advance(face, line)
	}
	return w.WriteBlockAt(lines, xs, slotTop, face)
}
