package model

import (
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := map[string]Position{
		"PG":             POS_PG,
		"pg":             POS_PG,
		"Point Guard":    POS_PG,
		"SG":             POS_SG,
		"Shooting Guard": POS_SG,
		"SF":             POS_SF,
		"Small Forward":  POS_SF,
		"PF":             POS_PF,
		"Power Forward":  POS_PF,
		"C":              POS_C,
		"Center":         POS_C,
		"Guard":          POS_G,
		"Forward":        POS_F,
		"F-C":            POS_PF,
		"wing":           POS_SF,
		"kicker":         POS_UNKNOWN,
		"":               POS_UNKNOWN,
	}

	for in, want := range tests {
		if got := ParsePosition(in); got != want {
			t.Errorf("ParsePosition(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsGuard(t *testing.T) {
	if !POS_PG.IsGuard() || !POS_SG.IsGuard() || !POS_G.IsGuard() {
		t.Error("expected guard positions to report IsGuard")
	}
	if POS_C.IsGuard() || POS_F.IsGuard() {
		t.Error("expected frontcourt positions to not report IsGuard")
	}
}
