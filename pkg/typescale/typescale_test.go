package typescale

import (
	"math"
	"testing"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestNewLadderValues(t *testing.T) {
	s, err := New(32, 1.2)
	if err != nil {
		t.Fatalf("New(32, 1.2) returned error: %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Body", s.Body, 32},
		{"H5", s.H5, 38.4},
		{"H4", s.H4, 46.08},
		{"Caption", s.Caption, 32 / 1.2},
		{"Small", s.Small, 32 / 1.2 / 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !almostEqual(tt.got, tt.want) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestNewLadderRatios(t *testing.T) {
	s, err := New(32, 1.2)
	if err != nil {
		t.Fatalf("New(32, 1.2) returned error: %v", err)
	}

	steps := []struct {
		name   string
		larger float64
		base   float64
	}{
		{"H5/Body", s.H5, s.Body},
		{"H4/H5", s.H4, s.H5},
		{"H3/H4", s.H3, s.H4},
		{"H2/H3", s.H2, s.H3},
		{"H1/H2", s.H1, s.H2},
		{"Body/Caption", s.Body, s.Caption},
		{"Caption/Small", s.Caption, s.Small},
	}

	for _, st := range steps {
		t.Run(st.name, func(t *testing.T) {
			if got := st.larger / st.base; !almostEqual(got, 1.2) {
				t.Errorf("ratio = %v, want 1.2", got)
			}
		})
	}
}

func TestNewOrdering(t *testing.T) {
	s := MustNew(32, 1.2)
	ladder := []float64{s.H1, s.H2, s.H3, s.H4, s.H5, s.Body, s.Caption, s.Small}
	for i := 1; i < len(ladder); i++ {
		if ladder[i] >= ladder[i-1] {
			t.Errorf("ladder[%d] = %v, want < %v", i, ladder[i], ladder[i-1])
		}
	}
}

func TestNewInvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		base  float64
		ratio float64
	}{
		{"zero base", 0, 1.2},
		{"negative base", -5, 1.2},
		{"ratio one", 32, 1},
		{"ratio below one", 32, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.base, tt.ratio)
			if err == nil {
				t.Fatalf("New(%v, %v) = nil error, want error", tt.base, tt.ratio)
			}
			if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidInput)
			}
		})
	}
}
