package model

import (
	"fmt"
)

// StatLine holds the per-season rates printed in a player block. Shooting
// values are percentages (66.3 means 66.3%), everything else is per-game.
type StatLine struct {
	PlayerID     string
	Season       string // e.g. "2024-25"
	GamesPlayed  int
	Minutes      float64
	Points       float64
	Rebounds     float64
	Assists      float64
	Steals       float64
	Blocks       float64
	TrueShooting float64
	EffectiveFG  float64
	ThreePct     float64
	Usage        float64
}

// String renders the stat line the way the source pages label it:
// "29.6 pts, 12.7 reb, 10.1 ast, 66.3 TS%".
func (s *StatLine) String() string {
	return fmt.Sprintf("%.1f pts, %.1f reb, %.1f ast, %.1f TS%%",
		s.Points, s.Rebounds, s.Assists, s.TrueShooting)
}
