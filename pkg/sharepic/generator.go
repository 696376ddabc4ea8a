// Package sharepic renders the weekly promotional image: a fixed-size
// portrait canvas with one card per team, composed of a frosted panel,
// the team label, stacked date and opponent rows, and a right-side time
// or score field.
package sharepic

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/young-islanders/sharepic/pkg/assets"
	"github.com/young-islanders/sharepic/pkg/canvas"
	apperrors "github.com/young-islanders/sharepic/pkg/errors"
	"github.com/young-islanders/sharepic/pkg/layout"
	"github.com/young-islanders/sharepic/pkg/text"
	"github.com/young-islanders/sharepic/pkg/typescale"
)

// Mode selects the semantics of a card's value field.
type Mode int

const (
	// ModePreview renders upcoming games; the value field is the kickoff
	// time.
	ModePreview Mode = iota
	// ModeResults renders played games; the value field is the score,
	// drawn as a colon-aligned pair.
	ModeResults
)

// String returns the mode's CLI name.
func (m Mode) String() string {
	if m == ModeResults {
		return "results"
	}
	return "preview"
}

// headline returns the second headline line for a calendar week.
func (m Mode) headline(week int) string {
	if m == ModeResults {
		return fmt.Sprintf("ERGEBNISSE KW %d", week)
	}
	return fmt.Sprintf("SPIELVORSCHAU KW %d", week)
}

// Row is one game line on a card.
type Row struct {
	Date     string // display date, e.g. "03.11.2025"
	Opponent string // full opponent name or venue
	Value    string // kickoff time or raw "A:B" score, empty when absent
	Away     bool   // true for away games; reverses score field order
}

// Card is one team's content for the active week.
type Card struct {
	Team string
	Rows []Row
}

// inkBlue is the club color used for card text.
var inkBlue = color.NRGBA{R: 12, G: 24, B: 40, A: 255}

// Option configures a Generator.
type Option func(*Generator)

// WithMetrics overrides the layout-constants table.
func WithMetrics(m layout.Metrics) Option { return func(g *Generator) { g.metrics = m } }

// WithScale overrides the type scale.
func WithScale(s typescale.Scale) Option { return func(g *Generator) { g.scale = s } }

// WithFooter sets the caption line at the bottom edge.
func WithFooter(s string) Option { return func(g *Generator) { g.footer = s } }

// WithPlainPanels draws opaque white cards instead of the frosted-glass
// effect.
func WithPlainPanels() Option { return func(g *Generator) { g.plain = true } }

// Generator renders sharepics from card records. A Generator holds no
// per-pass mutable state, so one instance can serve sequential renders;
// each Render call owns a fresh canvas.
type Generator struct {
	assets  *assets.Bundle
	metrics layout.Metrics
	scale   typescale.Scale
	footer  string
	plain   bool
}

// New creates a Generator drawing with the given assets.
func New(bundle *assets.Bundle, opts ...Option) (*Generator, error) {
	if bundle == nil || bundle.Background == nil || bundle.Font == nil {
		return nil, apperrors.New(apperrors.ErrCodeAssetLoad, "generator needs at least a background and a font")
	}

	g := &Generator{
		assets:  bundle,
		metrics: layout.Default(),
		scale:   typescale.MustNew(32, 1.2),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Render composes one sharepic. Cards with no usable row for the mode
// (e.g. a division without a reported score in results mode) are excluded
// from the slot count entirely. Render fails, rather than degrading, on
// layout overflow or malformed score values.
func (g *Generator) Render(cards []Card, title string, week int, mode Mode) (image.Image, error) {
	active := activeCards(cards)

	m := g.metrics
	c := canvas.New(int(m.CanvasW), int(m.CanvasH), g.assets.Background)
	dc := c.Context()

	g.drawLogo(c)
	topY := g.drawHeadlines(c, title, mode.headline(week))
	bottomY := m.CanvasH * m.BottomFrac

	slots, err := m.Compute(len(active), topY, bottomY)
	if err != nil {
		return nil, err
	}
	if len(slots) != len(active) {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "computed %d slots for %d cards", len(slots), len(active))
	}

	g.drawFooter(c)

	writer := text.NewWriter(dc, m.SlotH)
	for i, card := range active {
		if err := g.drawCard(c, writer, slots[i], card, mode); err != nil {
			return nil, err
		}
	}

	return c.Image(), nil
}

// activeCards drops rows without a value and cards left with no rows.
func activeCards(cards []Card) []Card {
	var active []Card
	for _, card := range cards {
		var rows []Row
		for _, r := range card.Rows {
			if r.Value != "" {
				rows = append(rows, r)
			}
		}
		if len(rows) > 0 {
			active = append(active, Card{Team: card.Team, Rows: rows})
		}
	}
	return active
}

func (g *Generator) drawLogo(c *canvas.Canvas) {
	logo := g.assets.Logo
	if logo == nil {
		return
	}
	x := (int(g.metrics.CanvasW) - logo.Bounds().Dx()) / 2
	c.Context().DrawImage(logo, x, int(g.metrics.LogoY))
}

// drawHeadlines paints the title and week lines and returns the y where
// the card region may begin.
func (g *Generator) drawHeadlines(c *canvas.Canvas, title, sub string) float64 {
	m := g.metrics
	dc := c.Context()
	h1 := g.assets.Font.Face(g.scale.H1)
	h4 := g.assets.Font.Face(g.scale.H4)

	dc.SetColor(color.White)

	dc.SetFontFace(h1)
	titleBaseline := m.CanvasH * m.HeadlineFrac
	dc.DrawString(title, (m.CanvasW-text.Advance(h1, title))/2, titleBaseline)

	subAscent := text.Ascent(h4)
	subBaseline := titleBaseline + 2*subAscent
	dc.SetFontFace(h4)
	dc.DrawString(sub, (m.CanvasW-text.Advance(h4, sub))/2, subBaseline)

	return subBaseline + 0.5*subAscent
}

func (g *Generator) drawFooter(c *canvas.Canvas) {
	if g.footer == "" {
		return
	}
	m := g.metrics
	dc := c.Context()
	face := g.assets.Font.Face(g.scale.Caption)

	dc.SetColor(color.White)
	dc.SetFontFace(face)
	dc.DrawString(g.footer, (m.CanvasW-text.Advance(face, g.footer))/2, m.CanvasH*m.FooterFrac)
}

func (g *Generator) drawCard(c *canvas.Canvas, writer *text.Writer, slot layout.Slot, card Card, mode Mode) error {
	m := g.metrics
	dc := c.Context()

	if g.plain {
		c.DrawPlainPanel(slot)
	} else {
		c.DrawFrostedPanel(slot)
	}

	if vs := g.assets.VSGlyph; vs != nil {
		dc.DrawImageAnchored(vs, int(m.CanvasW*m.VSXFrac), int(slot.CenterY()), 0.5, 0.5)
	}

	dc.SetColor(inkBlue)

	h3 := g.assets.Font.Face(g.scale.H3)
	if err := writer.WriteBlock([]string{card.Team}, m.CanvasW*m.TeamXFrac, slot.Y, h3); err != nil {
		return err
	}

	body := g.assets.Font.Face(g.scale.Body)
	dates := make([]string, len(card.Rows))
	opponents := make([]string, len(card.Rows))
	for i, r := range card.Rows {
		dates[i] = r.Date
		opponents[i] = r.Opponent
	}
	if err := writer.WriteBlock(dates, m.CanvasW*m.DateXFrac, slot.Y, body); err != nil {
		return err
	}
	if err := writer.WriteBlock(opponents, m.CanvasW*m.OpponentXFrac, slot.Y, body); err != nil {
		return err
	}

	return g.drawValues(writer, slot, card, mode, body)
}

// drawValues paints the right-side field: kickoff times right-aligned in
// preview mode, colon-aligned score pairs in results mode.
func (g *Generator) drawValues(writer *text.Writer, slot layout.Slot, card Card, mode Mode, face font.Face) error {
	m := g.metrics

	if mode == ModePreview {
		values := make([]string, len(card.Rows))
		for i, r := range card.Rows {
			values[i] = r.Value
		}
		return writer.WriteBlockRightAligned(values, m.CanvasW*m.ValueXFrac, slot.Y, face)
	}

	pairs := make([]text.ScorePair, len(card.Rows))
	for i, r := range card.Rows {
		p, err := text.ParseScoreFor(r.Value, r.Away)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidScore, err, "card %s row %d", card.Team, i)
		}
		pairs[i] = p
	}
	return writer.WriteScores(pairs, m.CanvasW*m.ColonXFrac, slot.Y, face)
}
