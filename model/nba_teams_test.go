package model

import (
	"testing"
)

func TestParseTeam(t *testing.T) {
	tests := map[string]*NBATeam{
		"DEN":            TEAM_DEN,
		"den":            TEAM_DEN,
		"Denver":         TEAM_DEN,
		"Nuggets":        TEAM_DEN,
		"OKC":            TEAM_OKC,
		"Oklahoma City":  TEAM_OKC,
		"Sixers":         TEAM_PHI,
		"Philly":         TEAM_PHI,
		"GS":             TEAM_GSW,
		"Dubs":           TEAM_GSW,
		"Wolves":         TEAM_MIN,
		"Trail Blazers":  TEAM_POR,
		"Los Angeles Lakers": TEAM_LAL,
		"LAC":            TEAM_LAC,
		"PHO":            TEAM_PHX,
		"":               TEAM_FA,
		"Free Agent":     TEAM_FA,
		"not a team":     TEAM_FA,
	}

	for in, want := range tests {
		if got := ParseTeam(in); got != want {
			t.Errorf("ParseTeam(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTeamFriendly(t *testing.T) {
	if TEAM_GSW.Friendly() != "Golden State Warriors" {
		t.Errorf("unexpected friendly name: %s", TEAM_GSW.Friendly())
	}
	if TEAM_FA.Friendly() != "FA" {
		t.Errorf("unexpected friendly name for FA: %s", TEAM_FA.Friendly())
	}
}

func TestTeamEquals(t *testing.T) {
	if !TEAM_BOS.Equals(TEAM_BOS) {
		t.Error("expected a team to equal itself")
	}
	if TEAM_BOS.Equals(TEAM_MIA) {
		t.Error("expected different teams to not be equal")
	}
	if TEAM_BOS.Equals(nil) {
		t.Error("expected team to not equal nil")
	}

	copy := &NBATeam{name: "BOS", loc: "Boston", mascot: "Celtics"}
	if !TEAM_BOS.Equals(copy) {
		t.Error("expected identical team values to be equal")
	}
}
