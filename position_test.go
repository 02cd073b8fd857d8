package drawer

import "testing"

func TestPositionFor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Position
	}{
		{"open lowercase", "open", Open},
		{"open uppercase", "OPEN", Open},
		{"open mixed case", "OpEn", Open},
		{"collapsed", "collapsed", Collapsed},
		{"partially revealed camel", "partiallyRevealed", PartiallyRevealed},
		{"partially revealed snake", "partially_revealed", PartiallyRevealed},
		{"closed", "Closed", Closed},
		{"empty defaults to collapsed", "", Collapsed},
		{"unrecognized defaults to collapsed", "sideways", Collapsed},
		{"whitespace trimmed", "  open  ", Open},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PositionFor(tt.in); got != tt.want {
				t.Errorf("PositionFor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPositionAt(t *testing.T) {
	tests := []struct {
		name string
		raw  int
		want Position
	}{
		{"collapsed", 0, Collapsed},
		{"partially revealed", 1, PartiallyRevealed},
		{"open", 2, Open},
		{"closed", 3, Closed},
		{"negative clamps", -1, Collapsed},
		{"out of range clamps", 42, Collapsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PositionAt(tt.raw); got != tt.want {
				t.Errorf("PositionAt(%d) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	for _, p := range AllPositions() {
		if PositionFor(p.String()) != p {
			t.Errorf("PositionFor(%q) does not round-trip to %v", p.String(), p)
		}
	}
	if Position(99).String() != "unknown" {
		t.Errorf("out-of-range String() = %q, want unknown", Position(99).String())
	}
}

func TestNormalizePositions(t *testing.T) {
	tests := []struct {
		name string
		in   []Position
		want []Position
	}{
		{"nil stays nil", nil, nil},
		{"empty stays nil", []Position{}, nil},
		{"sorted by rank", []Position{Open, Collapsed}, []Position{Collapsed, Open}},
		{"duplicates dropped", []Position{Open, Open, Collapsed}, []Position{Collapsed, Open}},
		{"invalid dropped", []Position{Position(9), Open}, []Position{Open}},
		{"all invalid yields nil", []Position{Position(-2), Position(9)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizePositions(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("normalizePositions(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("normalizePositions(%v)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLowestOpenPosition(t *testing.T) {
	tests := []struct {
		name string
		in   []Position
		want Position
	}{
		{"full set", AllPositions(), Collapsed},
		{"compact set", CompactPositions(), Collapsed},
		{"open only", []Position{Open, Closed}, Open},
		{"closed only keeps closed", []Position{Closed}, Closed},
		{"empty falls back", nil, Collapsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lowestOpenPosition(tt.in); got != tt.want {
				t.Errorf("lowestOpenPosition(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
