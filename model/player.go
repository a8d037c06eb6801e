package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	RookieYearFormat = "2006"
)

type Player struct {
	ID            string
	FirstName     string
	LastName      string
	Nickname1     string
	Position      Position
	Team          *NBATeam
	Weight        int // pounds
	Height        int // inches
	BirthDate     time.Time
	RookieYear    time.Time
	Seasons       int
	DraftYear     int
	DraftRound    int
	DraftPick     int // overall pick number, 0 for undrafted
	Championships int
	MVPs          int
	AllNBA        int
	Active        bool
	Created       time.Time
	Updated       time.Time
	Changes       []Change
}

// Age returns the player's age in whole years at the given time, or 0 when
// the birth date is unknown.
func (p *Player) Age(now time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	years := now.Year() - p.BirthDate.Year()
	if now.YearDay() < p.BirthDate.YearDay() {
		years--
	}
	return years
}

func (p *Player) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", p.FirstName, p.LastName))
}

func (p *Player) FormattedBirthDate() string {
	if p.BirthDate.IsZero() {
		return "unknown"
	}
	return p.BirthDate.Format(time.DateOnly)
}

func (p *Player) FormattedRookieYear() string {
	if p.RookieYear.IsZero() {
		return "unknown"
	}
	return p.RookieYear.Format(RookieYearFormat)
}

func (p *Player) FormattedCreatedTime() string {
	if p.Created.IsZero() {
		return "unknown"
	}
	return p.Created.Format(time.DateTime)
}

func (p *Player) FormattedUpdatedTime() string {
	if p.Updated.IsZero() {
		return "unknown"
	}
	return p.Updated.Format(time.DateTime)
}

// FormattedDraft renders the draft slot the way the source pages print it,
// e.g. "Draft: 2014, Rd 2, No. 41". Undrafted players render as "Undrafted".
func (p *Player) FormattedDraft() string {
	if p.DraftPick == 0 {
		return "Undrafted"
	}
	return fmt.Sprintf("Draft: %d, Rd %d, No. %d", p.DraftYear, p.DraftRound, p.DraftPick)
}

type Change struct {
	Time         time.Time
	PropertyName string
	OldValue     string
	NewValue     string
}

func (c *Change) String() string {
	return fmt.Sprintf("%s changed from '%s' to '%s'", c.PropertyName, c.OldValue, c.NewValue)
}

// Take a full name, like "Jaren Jackson Jr." and return "Jaren Jackson".
func TrimNameSuffix(fullName string) string {
	// Longer numerals first so "III" is not left as "I" by the "II" trim.
	suffixList := []string{
		"Jr.",
		"Sr.",
		"IV",
		"III",
		"II",
	}

	for _, s := range suffixList {
		if trimmed := strings.TrimSuffix(fullName, s); trimmed != fullName {
			fullName = trimmed
			break
		}
	}

	return strings.TrimSpace(fullName)
}

// PlayerID builds the stable slug id used for players, e.g.
// "nikola-jokic". The source pages have no numeric ids, so the slug is
// derived from the name.
func PlayerID(fullName string) string {
	s := strings.ToLower(TrimNameSuffix(fullName))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == '\'' || r == '.':
			// "De'Aaron" slugs as "deaaron", not "de-aaron"
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
