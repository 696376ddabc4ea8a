package text

import (
	"strings"
	"unicode"

	"golang.org/x/image/font"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
)

// ScorePair is a game result split into its two numeric fields. Left is
// the own team's goals, Right the opponent's, matching the home-team-first
// display convention.
type ScorePair struct {
	Left  string
	Right string
}

// ParseScore splits a raw "A:B" value into a ScorePair. Both fields must
// be non-empty and numeric; anything else is rejected rather than passed
// through to the renderer.
func ParseScore(raw string) (ScorePair, error) {
	left, right, ok := strings.Cut(raw, ":")
	if !ok {
		return ScorePair{}, apperrors.New(apperrors.ErrCodeInvalidScore, "score %q is not of the form A:B", raw)
	}
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if !isDigits(left) || !isDigits(right) {
		return ScorePair{}, apperrors.New(apperrors.ErrCodeInvalidScore, "score %q must have two integer fields", raw)
	}
	return ScorePair{Left: left, Right: right}, nil
}

// ParseScoreFor parses raw and normalizes field order for the given venue.
// Away records store the opponent's goals first, so the pair is swapped to
// keep the own score on the left.
func ParseScoreFor(raw string, away bool) (ScorePair, error) {
	p, err := ParseScore(raw)
	if err != nil {
		return ScorePair{}, err
	}
	if away {
		return p.Swapped(), nil
	}
	return p, nil
}

// Swapped returns the pair with its fields exchanged.
func (p ScorePair) Swapped() ScorePair {
	return ScorePair{Left: p.Right, Right: p.Left}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// WriteScores draws one score pair per line, vertically centered as a
// block, with every colon on the shared vertical anchor colonX. The left
// field is right-aligned against the colon and the right field starts
// after the colon's advance width, so multi-game cards line up digit
// columns across rows.
func (w *Writer) WriteScores(pairs []ScorePair, colonX, slotTop float64, face font.Face) error {
	if len(pairs) == 0 {
		return nil
	}

	m := MeasureBlock(face, len(pairs), slotTop, w.slotH)
	colonAdvance := Advance(face, ":")

	w.dc.SetFontFace(face)
	for i, p := range pairs {
		baseline := m.Baseline(i)
		w.dc.DrawString(p.Left, colonX-Advance(face, p.Left), baseline)
		w.dc.DrawString(":", colonX, baseline)
		w.dc.DrawString(p.Right, colonX+colonAdvance, baseline)
	}
	return nil
}
