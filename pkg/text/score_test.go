package text

import (
	"testing"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    ScorePair
		wantErr bool
	}{
		{"simple", "3:5", ScorePair{"3", "5"}, false},
		{"double digits", "10:2", ScorePair{"10", "2"}, false},
		{"spaces around fields", " 3 : 5 ", ScorePair{"3", "5"}, false},
		{"missing colon", "35", ScorePair{}, true},
		{"empty left", ":5", ScorePair{}, true},
		{"empty right", "3:", ScorePair{}, true},
		{"non-numeric", "a:b", ScorePair{}, true},
		{"empty value", "", ScorePair{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScore(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseScore(%q) = nil error, want error", tt.raw)
				}
				if !apperrors.Is(err, apperrors.ErrCodeInvalidScore) {
					t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidScore)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScore(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseScore(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseScoreForVenue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		away bool
		want ScorePair
	}{
		{"home unchanged", "3:5", false, ScorePair{"3", "5"}},
		{"away reversed", "3:5", true, ScorePair{"5", "3"}},
		{"away reversed round trip", "5:3", true, ScorePair{"3", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScoreFor(tt.raw, tt.away)
			if err != nil {
				t.Fatalf("ParseScoreFor(%q, %v) returned error: %v", tt.raw, tt.away, err)
			}
			if got != tt.want {
				t.Errorf("ParseScoreFor(%q, %v) = %v, want %v", tt.raw, tt.away, got, tt.want)
			}
		})
	}
}

func TestScorePairSwapped(t *testing.T) {
	p := ScorePair{"1", "4"}
	if got := p.Swapped(); got != (ScorePair{"4", "1"}) {
		t.Errorf("Swapped() = %v, want {4 1}", got)
	}
	if got := p.Swapped().Swapped(); got != p {
		t.Errorf("double Swapped() = %v, want %v", got, p)
	}
}
