package model

import (
	"testing"
	"time"
)

func TestPlayerDateFormatFunctions(t *testing.T) {
	zeroDates := &Player{
		BirthDate:  time.Time{},
		RookieYear: time.Time{},
		Created:    time.Time{},
		Updated:    time.Time{},
	}
	if zeroDates.FormattedBirthDate() != "unknown" {
		t.Error("birthdate is not unknown")
	}
	if zeroDates.FormattedRookieYear() != "unknown" {
		t.Error("rookie year is not unknown")
	}
	if zeroDates.FormattedCreatedTime() != "unknown" {
		t.Error("created time is not unknown")
	}
	if zeroDates.FormattedUpdatedTime() != "unknown" {
		t.Error("updated time is not unknown")
	}

	nonZeroDates := &Player{
		BirthDate:  time.Date(1995, 2, 19, 0, 0, 0, 0, time.UTC),
		RookieYear: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		Created:    time.Date(2025, 7, 8, 10, 14, 36, 136, time.UTC),
		Updated:    time.Date(2025, 7, 9, 17, 12, 51, 0, time.UTC),
	}
	if nonZeroDates.FormattedBirthDate() != "1995-02-19" {
		t.Errorf("birthdate was not expected value: '%s'", nonZeroDates.FormattedBirthDate())
	}
	if nonZeroDates.FormattedRookieYear() != "2015" {
		t.Errorf("rookie year was not expected value: '%s'", nonZeroDates.FormattedRookieYear())
	}
	if nonZeroDates.FormattedCreatedTime() != "2025-07-08 10:14:36" {
		t.Errorf("created time was not expected value: '%s'", nonZeroDates.FormattedCreatedTime())
	}
	if nonZeroDates.FormattedUpdatedTime() != "2025-07-09 17:12:51" {
		t.Errorf("updated time was not expected value: '%s'", nonZeroDates.FormattedUpdatedTime())
	}
}

func TestPlayerAge(t *testing.T) {
	p := &Player{BirthDate: time.Date(1995, 2, 19, 0, 0, 0, 0, time.UTC)}

	now := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	if got := p.Age(now); got != 30 {
		t.Errorf("expected age 30, got %d", got)
	}

	beforeBirthday := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if got := p.Age(beforeBirthday); got != 29 {
		t.Errorf("expected age 29 before birthday, got %d", got)
	}

	unknown := &Player{}
	if got := unknown.Age(now); got != 0 {
		t.Errorf("expected age 0 for unknown birth date, got %d", got)
	}
}

func TestFormattedDraft(t *testing.T) {
	drafted := &Player{DraftYear: 2014, DraftRound: 2, DraftPick: 41}
	if drafted.FormattedDraft() != "Draft: 2014, Rd 2, No. 41" {
		t.Errorf("draft line was not expected value: '%s'", drafted.FormattedDraft())
	}

	undrafted := &Player{}
	if undrafted.FormattedDraft() != "Undrafted" {
		t.Errorf("expected 'Undrafted', got '%s'", undrafted.FormattedDraft())
	}
}

func TestChangeString(t *testing.T) {
	c := &Change{
		Time:         time.Date(2025, 7, 8, 10, 23, 19, 111, time.UTC),
		PropertyName: "Team",
		OldValue:     "DAL",
		NewValue:     "LAL",
	}
	if c.String() != "Team changed from 'DAL' to 'LAL'" {
		t.Errorf("string was not expected value: '%s'", c.String())
	}
}

func TestTrimNameSuffix(t *testing.T) {
	tests := map[string]string{
		"Jaren Jackson Jr.":   "Jaren Jackson",
		"Gary Payton II":      "Gary Payton",
		"Tim Hardaway Jr.":    "Tim Hardaway",
		"Nikola Jokic":        "Nikola Jokic",
		"Kelly Oubre Jr.":     "Kelly Oubre",
		"Robert Williams III": "Robert Williams",
		"Wendell Carter IV":   "Wendell Carter",
	}
	for in, want := range tests {
		if got := TrimNameSuffix(in); got != want {
			t.Errorf("TrimNameSuffix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlayerID(t *testing.T) {
	tests := map[string]string{
		"Nikola Jokic":            "nikola-jokic",
		"Shai Gilgeous-Alexander": "shai-gilgeous-alexander",
		"Jaren Jackson Jr.":       "jaren-jackson",
		"Robert Williams III":     "robert-williams",
		"De'Aaron Fox":            "deaaron-fox",
		"  Luka   Doncic  ":       "luka-doncic",
	}
	for in, want := range tests {
		if got := PlayerID(in); got != want {
			t.Errorf("PlayerID(%q) = %q, want %q", in, got, want)
		}
	}
}
