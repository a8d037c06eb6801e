package scrape

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hooprank/hooprank/model"
)

var (
	rankHeadingRegex = regexp.MustCompile(`^(?P<rank>\d+)\.\s+(?P<name>.+)$`)
	heightRegex      = regexp.MustCompile(`(?P<feet>\d+)'(?P<inches>\d+)"?`)
	weightRegex      = regexp.MustCompile(`(?P<lbs>\d+)\s*lbs`)
	ageSeasonsRegex  = regexp.MustCompile(`Age\s*(?P<age>\d+),\s*(?P<seasons>\d+)\s*Seasons?`)
	draftRegex       = regexp.MustCompile(`Draft:\s*(?P<year>\d{4}),\s*Rd\s*(?P<round>\d+),\s*No\.\s*(?P<pick>\d+)`)
	accoladeRegex    = regexp.MustCompile(`(?:(?P<count>\d+)x?\s*)?(?P<what>MVP|Championship|Champion|All-NBA)`)
	seasonRegex      = regexp.MustCompile(`^(?P<season>\d{4}-\d{2}):\s*(?P<rest>.+)$`)
)

// BioLine is the parsed form of the one-line biography under a player
// heading, e.g.
//
//	C, Denver Nuggets | 6'11", 284 lbs | Age30, 11 Seasons | Draft: 2014, Rd 2, No. 41 | 3x MVP, 1x Champion, 6x All-NBA
type BioLine struct {
	Position      model.Position
	Team          *model.NBATeam
	Height        int // inches
	Weight        int // pounds
	Age           int
	Seasons       int
	DraftYear     int
	DraftRound    int
	DraftPick     int
	Championships int
	MVPs          int
	AllNBA        int
}

// PlayerBlock is everything extracted for one player from a list page.
type PlayerBlock struct {
	Rank     int32
	Name     string
	Tier     string // tier heading in effect, empty outside the trade value list
	Bio      BioLine
	Season   string
	Stats    model.StatLine
	Analysis string // markdown
	Update   string // markdown, often empty
}

// ToPlayer converts the scraped block into a player record. The pages print
// age rather than a birth date, so BirthDate stays zero; the rookie year is
// taken from the draft year when the player was drafted.
func (b *PlayerBlock) ToPlayer() *model.Player {
	p := &model.Player{
		ID:            model.PlayerID(b.Name),
		Position:      b.Bio.Position,
		Team:          b.Bio.Team,
		Weight:        b.Bio.Weight,
		Height:        b.Bio.Height,
		Seasons:       b.Bio.Seasons,
		DraftYear:     b.Bio.DraftYear,
		DraftRound:    b.Bio.DraftRound,
		DraftPick:     b.Bio.DraftPick,
		Championships: b.Bio.Championships,
		MVPs:          b.Bio.MVPs,
		AllNBA:        b.Bio.AllNBA,
		Active:        true,
	}

	name := model.TrimNameSuffix(b.Name)
	first, last, found := strings.Cut(name, " ")
	if !found {
		last = ""
	}
	p.FirstName = first
	p.LastName = last

	if b.Bio.DraftYear > 0 {
		p.RookieYear = time.Date(b.Bio.DraftYear, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	return p
}

// parseRankHeading splits a heading like "1. Nikola Jokic" into the rank and
// the player name.
func parseRankHeading(s string) (int32, string, error) {
	m := rankHeadingRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, "", fmt.Errorf("not a ranked player heading: %q", s)
	}

	rank, err := strconv.Atoi(m[rankHeadingRegex.SubexpIndex("rank")])
	if err != nil || rank <= 0 {
		return 0, "", fmt.Errorf("bad rank in heading %q", s)
	}

	return int32(rank), strings.TrimSpace(m[rankHeadingRegex.SubexpIndex("name")]), nil
}

// parseBioLine handles the pipe-separated biography segments. Segments are
// recognized by shape, not position, since the pages are not consistent
// about ordering or about including every segment.
func parseBioLine(s string) BioLine {
	bio := BioLine{Position: model.POS_UNKNOWN, Team: model.TEAM_FA}

	for _, seg := range strings.Split(s, "|") {
		seg = strings.TrimSpace(seg)
		switch {
		case seg == "":
			continue
		case ageSeasonsRegex.MatchString(seg):
			m := ageSeasonsRegex.FindStringSubmatch(seg)
			bio.Age = atoiOrZero(m[ageSeasonsRegex.SubexpIndex("age")])
			bio.Seasons = atoiOrZero(m[ageSeasonsRegex.SubexpIndex("seasons")])
		case draftRegex.MatchString(seg):
			m := draftRegex.FindStringSubmatch(seg)
			bio.DraftYear = atoiOrZero(m[draftRegex.SubexpIndex("year")])
			bio.DraftRound = atoiOrZero(m[draftRegex.SubexpIndex("round")])
			bio.DraftPick = atoiOrZero(m[draftRegex.SubexpIndex("pick")])
		case strings.EqualFold(seg, "Undrafted"):
			// leave the draft fields zero
		case heightRegex.MatchString(seg) || weightRegex.MatchString(seg):
			bio.Height = parseHeight(seg)
			bio.Weight = parseWeight(seg)
		case accoladeRegex.MatchString(seg):
			bio.Championships, bio.MVPs, bio.AllNBA = parseAccolades(seg)
		default:
			// "C, Denver Nuggets" style position and team segment
			pos, team, ok := strings.Cut(seg, ",")
			if !ok {
				bio.Position = model.ParsePosition(seg)
				continue
			}
			bio.Position = model.ParsePosition(pos)
			bio.Team = model.ParseTeam(team)
		}
	}

	return bio
}

// String is the inverse of parseBioLine for the captured fields.
func (b *BioLine) String() string {
	segs := make([]string, 0, 5)

	team := b.Team.Friendly()
	segs = append(segs, fmt.Sprintf("%s, %s", b.Position, team))
	segs = append(segs, fmt.Sprintf("%d'%d\", %d lbs", b.Height/12, b.Height%12, b.Weight))
	segs = append(segs, fmt.Sprintf("Age%d, %d Seasons", b.Age, b.Seasons))

	if b.DraftPick > 0 {
		segs = append(segs, fmt.Sprintf("Draft: %d, Rd %d, No. %d", b.DraftYear, b.DraftRound, b.DraftPick))
	} else {
		segs = append(segs, "Undrafted")
	}

	if acc := formatAccolades(b.Championships, b.MVPs, b.AllNBA); acc != "" {
		segs = append(segs, acc)
	}

	return strings.Join(segs, " | ")
}

// Get the height of the player in inches
func parseHeight(s string) int {
	m := heightRegex.FindStringSubmatch(s)
	if m == nil {
		log.Printf("no height found in %q", s)
		return 0
	}
	feet := atoiOrZero(m[heightRegex.SubexpIndex("feet")])
	inches := atoiOrZero(m[heightRegex.SubexpIndex("inches")])
	return feet*12 + inches
}

func parseWeight(s string) int {
	m := weightRegex.FindStringSubmatch(s)
	if m == nil {
		log.Printf("no weight found in %q", s)
		return 0
	}
	return atoiOrZero(m[weightRegex.SubexpIndex("lbs")])
}

func parseAccolades(s string) (championships, mvps, allNBA int) {
	for _, m := range accoladeRegex.FindAllStringSubmatch(s, -1) {
		count := 1
		if c := m[accoladeRegex.SubexpIndex("count")]; c != "" {
			count = atoiOrZero(c)
		}
		switch m[accoladeRegex.SubexpIndex("what")] {
		case "MVP":
			mvps = count
		case "Championship", "Champion":
			championships = count
		case "All-NBA":
			allNBA = count
		}
	}
	return championships, mvps, allNBA
}

func formatAccolades(championships, mvps, allNBA int) string {
	parts := make([]string, 0, 3)
	if mvps > 0 {
		parts = append(parts, fmt.Sprintf("%dx MVP", mvps))
	}
	if championships > 0 {
		parts = append(parts, fmt.Sprintf("%dx Champion", championships))
	}
	if allNBA > 0 {
		parts = append(parts, fmt.Sprintf("%dx All-NBA", allNBA))
	}
	return strings.Join(parts, ", ")
}

// Stat values on these pages always print with exactly one decimal digit.
// That is the only thing making the concatenated strip parseable: in
// "pts29.666.3 TS%" the label "pts" binds to "29.6" and the trailing
// "66.3" belongs to "TS%", which labels its value from the right.
const statValue = `\d+\.\d`

var (
	leadingStatRegexes = map[string]*regexp.Regexp{
		"pts": regexp.MustCompile(`pts(` + statValue + `)`),
		"reb": regexp.MustCompile(`reb(` + statValue + `)`),
		"ast": regexp.MustCompile(`ast(` + statValue + `)`),
		"stl": regexp.MustCompile(`stl(` + statValue + `)`),
		"blk": regexp.MustCompile(`blk(` + statValue + `)`),
		"min": regexp.MustCompile(`min(` + statValue + `)`),
	}
	// The optional leading value keeps a percentage from stealing the last
	// digit of the stat it is concatenated to: in "29.666.3 TS%" the first
	// one-decimal value is "29.6", so "66.3" is the one TS% labels.
	trailingStatRegexes = map[string]*regexp.Regexp{
		"TS%":  regexp.MustCompile(`(?:` + statValue + `)?(` + statValue + `)\s*TS%`),
		"eFG%": regexp.MustCompile(`(?:` + statValue + `)?(` + statValue + `)\s*eFG%`),
		"3P%":  regexp.MustCompile(`(?:` + statValue + `)?(` + statValue + `)\s*3P%`),
		"USG%": regexp.MustCompile(`(?:` + statValue + `)?(` + statValue + `)\s*USG%`),
	}
	gamesPlayedRegex = regexp.MustCompile(`gp(\d+)`)
)

// parseStatLine turns a scraped stat strip like
//
//	"2024-25: gp70, pts29.666.3 TS%, reb12.7, ast10.1, 41.7 3P%"
//
// into a stat line and its season label. Labels like "pts" bind the value to
// their right, percentage labels like "TS%" bind the value to their left;
// the source renders them adjacent with no separator.
func parseStatLine(s string) (model.StatLine, string) {
	var stats model.StatLine
	season := ""

	if m := seasonRegex.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
		season = m[seasonRegex.SubexpIndex("season")]
		s = m[seasonRegex.SubexpIndex("rest")]
	}

	grab := func(re *regexp.Regexp) float64 {
		m := re.FindStringSubmatch(s)
		if m == nil {
			return 0
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			log.Printf("error parsing stat value %q: %v", m[1], err)
			return 0
		}
		return v
	}

	stats.Points = grab(leadingStatRegexes["pts"])
	stats.Rebounds = grab(leadingStatRegexes["reb"])
	stats.Assists = grab(leadingStatRegexes["ast"])
	stats.Steals = grab(leadingStatRegexes["stl"])
	stats.Blocks = grab(leadingStatRegexes["blk"])
	stats.Minutes = grab(leadingStatRegexes["min"])
	stats.TrueShooting = grab(trailingStatRegexes["TS%"])
	stats.EffectiveFG = grab(trailingStatRegexes["eFG%"])
	stats.ThreePct = grab(trailingStatRegexes["3P%"])
	stats.Usage = grab(trailingStatRegexes["USG%"])

	if m := gamesPlayedRegex.FindStringSubmatch(s); m != nil {
		stats.GamesPlayed = atoiOrZero(m[1])
	}

	return stats, season
}

// formatStatLine is the inverse of parseStatLine for the captured fields.
// The source prints a percentage flush against whatever value precedes it;
// rendering the pts/TS% pair that way keeps the concatenated layout
// re-parseable. Zero-valued stats are omitted, matching pages that skip
// them.
func formatStatLine(stats model.StatLine, season string) string {
	parts := make([]string, 0, 10)

	if stats.GamesPlayed > 0 {
		parts = append(parts, fmt.Sprintf("gp%d", stats.GamesPlayed))
	}
	if stats.Minutes > 0 {
		parts = append(parts, fmt.Sprintf("min%.1f", stats.Minutes))
	}

	scoring := ""
	if stats.Points > 0 {
		scoring = fmt.Sprintf("pts%.1f", stats.Points)
	}
	if stats.TrueShooting > 0 {
		scoring += fmt.Sprintf("%.1f TS%%", stats.TrueShooting)
	}
	if scoring != "" {
		parts = append(parts, scoring)
	}

	if stats.Rebounds > 0 {
		parts = append(parts, fmt.Sprintf("reb%.1f", stats.Rebounds))
	}
	if stats.Assists > 0 {
		parts = append(parts, fmt.Sprintf("ast%.1f", stats.Assists))
	}
	if stats.Steals > 0 {
		parts = append(parts, fmt.Sprintf("stl%.1f", stats.Steals))
	}
	if stats.Blocks > 0 {
		parts = append(parts, fmt.Sprintf("blk%.1f", stats.Blocks))
	}
	if stats.EffectiveFG > 0 {
		parts = append(parts, fmt.Sprintf("%.1f eFG%%", stats.EffectiveFG))
	}
	if stats.ThreePct > 0 {
		parts = append(parts, fmt.Sprintf("%.1f 3P%%", stats.ThreePct))
	}
	if stats.Usage > 0 {
		parts = append(parts, fmt.Sprintf("%.1f USG%%", stats.Usage))
	}

	line := strings.Join(parts, ", ")
	if season != "" {
		line = season + ": " + line
	}
	return line
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("error converting %q to int: %v", s, err)
		return 0
	}
	return v
}
