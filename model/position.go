package model

import (
	"strings"
)

type Position string

const (
	POS_UNKNOWN Position = "UNK"
	POS_PG      Position = "PG"
	POS_SG      Position = "SG"
	POS_SF      Position = "SF"
	POS_PF      Position = "PF"
	POS_C       Position = "C"
	// The source pages often only say "Guard" or "Forward" for combo players.
	POS_G Position = "G"
	POS_F Position = "F"
)

func ParsePosition(pos string) Position {
	pos = strings.ToLower(strings.TrimSpace(pos))
	switch pos {
	case "pg", "point guard":
		return POS_PG
	case "sg", "shooting guard":
		return POS_SG
	case "sf", "small forward":
		return POS_SF
	case "pf", "power forward":
		return POS_PF
	case "c", "center":
		return POS_C
	case "g", "guard":
		return POS_G
	case "f", "forward":
		return POS_F
	case "f-c", "forward-center":
		return POS_PF
	case "g-f", "guard-forward", "wing":
		return POS_SF
	default:
		return POS_UNKNOWN
	}
}

// IsGuard reports whether the position counts as a backcourt spot.
func (p Position) IsGuard() bool {
	return p == POS_PG || p == POS_SG || p == POS_G
}
