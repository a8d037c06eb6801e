package controller

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hooprank/hooprank/model"
)

func (c *controller) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	return c.db.GetPlayer(ctx, id)
}

func (c *controller) Search(ctx context.Context, query string) ([]model.Player, error) {
	q, pos := getPositionFromQuery(query)
	q, team := getTeamFromQuery(q)

	if pos == model.POS_UNKNOWN && team == nil && q == "" {
		return nil, fmt.Errorf("error not a valid query: '%s'", query)
	}
	return c.db.Search(ctx, q, pos, team)
}

// Updates a player's nickname, or deletes it if the nickname == ""
// Returns an error if not successful, nil otherwise.
func (c *controller) UpdatePlayerNickname(ctx context.Context, id, nickname string) error {
	p, err := c.db.GetPlayer(ctx, id)
	if err != nil {
		return err
	}

	if p.Nickname1 == nickname {
		return errors.New("no update needed")
	}

	// Delete the nickname
	if nickname == "" {
		return c.db.DeleteNickname(ctx, id, p.Nickname1)
	}

	p.Nickname1 = nickname
	return c.db.SavePlayer(ctx, p)
}

func (c *controller) GetStatLines(ctx context.Context, playerID string) ([]model.StatLine, error) {
	return c.db.GetStatLines(ctx, playerID)
}

var positionRegex = regexp.MustCompile(`(?i)(pos|position)\s*:\s*(?P<pos>[\w-]+)`)

// Parse out the position from the query, returning the same query without the position.
// So if the query is "Jokic pos:C" this will return "Jokic" and model.POS_C.
// If the input query does not have a `pos:` argument then the function will return the
// input string and model.POS_UNKNOWN.
// Allowed tags for the position are `pos` and `position` case insensitive.
func getPositionFromQuery(q string) (string, model.Position) {
	pos := model.POS_UNKNOWN
	m := positionRegex.FindStringSubmatch(q)
	if m != nil {
		p := m[positionRegex.SubexpIndex("pos")]
		pos = model.ParsePosition(p)
		q = strings.Replace(q, m[0], "", 1) // Remove the position match from the query
		q = strings.TrimSpace(q)            // Remove any remaining whitespace
	}

	return q, pos
}

var teamRegex = regexp.MustCompile(`(?i)team\s*:\s*(?P<team>\w+)`)

// Parse out the team from the query, returning the same query without the team.
// So if the query is "Murray team:DEN" this will return "Murray" and model.TEAM_DEN.
// If the input query does not have a `team:` argument then the function will return the
// input string and nil.
// The only allowed tag is `team` case insensitive.
func getTeamFromQuery(q string) (string, *model.NBATeam) {
	var team *model.NBATeam
	m := teamRegex.FindStringSubmatch(q)
	if m != nil {
		t := m[teamRegex.SubexpIndex("team")]
		team = model.ParseTeam(t)
		if team == model.TEAM_FA {
			team = nil
		}
		q = strings.Replace(q, m[0], "", 1) // Remove the team match from the query
		q = strings.TrimSpace(q)            // Remove any remaining whitespace
	}

	return q, team
}
