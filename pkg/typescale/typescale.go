// Package typescale derives a geometric font-size ladder from a base size
// and a scale ratio. Every text-drawing operation in the renderer consumes
// sizes from one Scale, which keeps the typography consistent across a
// render pass.
package typescale

import (
	apperrors "github.com/young-islanders/sharepic/pkg/errors"
)

// Scale is an ordered ladder of font sizes, largest first.
// The ladder is immutable once constructed.
type Scale struct {
	H1      float64
	H2      float64
	H3      float64
	H4      float64
	H5      float64
	Body    float64
	Caption float64
	Small   float64
}

// New builds a Scale from a base body size and a scale ratio.
// Each heading step multiplies by ratio (H5 = ratio*base, H4 = ratio*H5, ...),
// while Caption and Small divide by it. base must be positive and ratio
// must be greater than 1.
func New(base, ratio float64) (Scale, error) {
	if base <= 0 {
		return Scale{}, apperrors.New(apperrors.ErrCodeInvalidInput, "type scale base size must be positive, got %v", base)
	}
	if ratio <= 1 {
		return Scale{}, apperrors.New(apperrors.ErrCodeInvalidInput, "type scale ratio must be greater than 1, got %v", ratio)
	}

	s := Scale{Body: base}
	s.H5 = ratio * base
	s.H4 = ratio * s.H5
	s.H3 = ratio * s.H4
	s.H2 = ratio * s.H3
	s.H1 = ratio * s.H2
	s.Caption = base / ratio
	s.Small = s.Caption / ratio
	return s, nil
}

// MustNew is like New but panics on invalid inputs. Intended for
// compile-time-constant arguments.
func MustNew(base, ratio float64) Scale {
	s, err := New(base, ratio)
	if err != nil {
		panic(err)
	}
	return s
}
