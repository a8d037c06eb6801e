package model

import (
	"time"
)

// Known list names. Editions of different lists never share a rank history.
const (
	ListTop100     = "top-100"
	ListTradeValue = "trade-value"
)

// Edition is one published version of a ranked list.
type Edition struct {
	ID        int32
	ListName  string // e.g. ListTop100
	Label     string // e.g. "Top 100 NBA Players of 2025"
	Published time.Time
	Tiers     []Tier
	Entries   []Entry
	Created   time.Time
}

// TierFor returns the tier an entry belongs to, or nil when the edition has
// no tiers (the Top 100 list) or the entry is untiered.
func (e *Edition) TierFor(entry *Entry) *Tier {
	if entry.Tier == "" {
		return nil
	}
	for i := range e.Tiers {
		if e.Tiers[i].Name == entry.Tier {
			return &e.Tiers[i]
		}
	}
	return nil
}

// Entry is one player's snapshot within an edition.
type Entry struct {
	Rank      int32
	PlayerID  string
	FirstName string
	LastName  string
	Position  Position
	Team      *NBATeam
	Tier      string // empty outside the trade value list
	// Movement is rank change since the previous edition of the same list.
	// Positive means the player climbed. Nil for first appearances.
	Movement *int32
}

// Tier is an editorially named bucket in the trade value list. Order is the
// order the tier appeared in the page, not anything numeric.
type Tier struct {
	Name  string
	Order int32
}

// RankHistory is a player's rank across successive editions of one list.
type RankHistory struct {
	PlayerID string
	ListName string
	Points   []RankPoint
}

type RankPoint struct {
	EditionID int32
	Label     string
	Published time.Time
	Rank      int32
}

type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendSteady  Trend = "steady"
)

// Trend compares the two most recent points. A lower rank number is a climb.
func (h *RankHistory) Trend() Trend {
	if len(h.Points) < 2 {
		return TrendSteady
	}
	latest := h.Points[len(h.Points)-1].Rank
	prev := h.Points[len(h.Points)-2].Rank
	switch {
	case latest < prev:
		return TrendRising
	case latest > prev:
		return TrendFalling
	default:
		return TrendSteady
	}
}
