package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/hooprank/hooprank/model"
)

const playerColumns = `id, name_first, name_last, nickname1, position, team,
		weight_lb, height_in, birth_date, rookie_year, seasons,
		draft_year, draft_round, draft_pick, championships, mvps, all_nba,
		active, created, updated`

func (db *postgresDB) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	p, err := db.getPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (db *postgresDB) SavePlayer(ctx context.Context, p *model.Player) error {
	old, err := db.getPlayer(ctx, p.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// This is an insert
			err := db.insertPlayer(ctx, p)
			if err != nil {
				return fmt.Errorf("error inserting player: %w", err)
			}
			return nil
		}

		return fmt.Errorf("error reading player at start of SavePlayer(): %w", err)
	}

	return db.updatePlayer(ctx, old, p)
}

func (db *postgresDB) DeleteNickname(ctx context.Context, playerID string, oldNickname string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := savePlayerNickname(ctx, tx, playerID, ""); err != nil {
		return err
	}

	change := model.Change{
		Time:         db.clock.Now().UTC(),
		PropertyName: "Nickname1",
		OldValue:     oldNickname,
		NewValue:     "",
	}
	if err := insertPlayerChange(ctx, tx, playerID, &change); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (db *postgresDB) Search(ctx context.Context, q string, pos model.Position, team *model.NBATeam) ([]model.Player, error) {
	const query = `SELECT ` + playerColumns + `
					FROM players WHERE fts_player @@ websearch_to_tsquery(@q)
						AND team ILIKE @team
						AND position ILIKE @pos`

	const teamAndPosQuery = `SELECT ` + playerColumns + `
					FROM players WHERE team ILIKE @team AND position ILIKE @pos`

	teamQ := "%"
	if team != nil {
		teamQ = team.String()
	}
	posQ := "%"
	if pos != model.POS_UNKNOWN {
		posQ = string(pos)
	}

	args := pgx.NamedArgs{
		"q":    q,
		"team": teamQ,
		"pos":  posQ,
	}

	qq := query
	if q == "" {
		qq = teamAndPosQuery
	}
	rows, err := db.pool.Query(ctx, qq, args)
	if err != nil {
		return nil, fmt.Errorf("error running search query: %w", err)
	}

	results := make([]model.Player, 0, 8)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}

	return results, nil
}

func (db *postgresDB) SaveStatLine(ctx context.Context, s *model.StatLine) error {
	const query = `INSERT INTO stat_lines (
			player_id, season, games_played, minutes, points, rebounds,
			assists, steals, blocks, true_shooting, effective_fg, three_pct, usage
		) VALUES (
			@playerID, @season, @gamesPlayed, @minutes, @points, @rebounds,
			@assists, @steals, @blocks, @trueShooting, @effectiveFG, @threePct, @usage
		) ON CONFLICT (player_id, season) DO UPDATE SET
			games_played=@gamesPlayed,
			minutes=@minutes,
			points=@points,
			rebounds=@rebounds,
			assists=@assists,
			steals=@steals,
			blocks=@blocks,
			true_shooting=@trueShooting,
			effective_fg=@effectiveFG,
			three_pct=@threePct,
			usage=@usage`

	args := pgx.NamedArgs{
		"playerID":     s.PlayerID,
		"season":       s.Season,
		"gamesPlayed":  s.GamesPlayed,
		"minutes":      s.Minutes,
		"points":       s.Points,
		"rebounds":     s.Rebounds,
		"assists":      s.Assists,
		"steals":       s.Steals,
		"blocks":       s.Blocks,
		"trueShooting": s.TrueShooting,
		"effectiveFG":  s.EffectiveFG,
		"threePct":     s.ThreePct,
		"usage":        s.Usage,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving stat line for %s/%s: %w", s.PlayerID, s.Season, err)
	}
	return nil
}

func (db *postgresDB) GetStatLines(ctx context.Context, playerID string) ([]model.StatLine, error) {
	const query = `SELECT player_id, season, games_played, minutes, points, rebounds,
			assists, steals, blocks, true_shooting, effective_fg, three_pct, usage
		FROM stat_lines WHERE player_id=@playerID ORDER BY season DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"playerID": playerID})
	if err != nil {
		return nil, fmt.Errorf("error querying stat lines: %w", err)
	}

	results := make([]model.StatLine, 0, 4)
	for rows.Next() {
		var s model.StatLine
		err := rows.Scan(&s.PlayerID, &s.Season, &s.GamesPlayed, &s.Minutes,
			&s.Points, &s.Rebounds, &s.Assists, &s.Steals, &s.Blocks,
			&s.TrueShooting, &s.EffectiveFG, &s.ThreePct, &s.Usage)
		if err != nil {
			return nil, fmt.Errorf("error scanning stat line: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}

	return results, nil
}

func (db *postgresDB) getPlayer(ctx context.Context, id string) (*model.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players WHERE id=@id`

	args := pgx.NamedArgs{
		"id": id,
	}
	row := db.pool.QueryRow(ctx, query, args)
	result, err := scanPlayer(row)
	if err != nil {
		return nil, err
	}

	changes, err := db.getChangesByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error looking up player changes for %s: %w", id, err)
	}
	result.Changes = changes

	return result, nil
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var result model.Player

	var pos DBPosition
	var team DBNBATeam
	var nickname1 sql.NullString
	var birthDate, rookieYear pgtype.Date
	var created, updated pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.FirstName,
		&result.LastName,
		&nickname1,
		&pos,
		&team,
		&result.Weight,
		&result.Height,
		&birthDate,
		&rookieYear,
		&result.Seasons,
		&result.DraftYear,
		&result.DraftRound,
		&result.DraftPick,
		&result.Championships,
		&result.MVPs,
		&result.AllNBA,
		&result.Active,
		&created,
		&updated)

	if err != nil {
		return nil, err
	}

	result.Position = pos.position
	result.Team = team.team
	result.Nickname1 = valueOrEmpty(nickname1)
	result.BirthDate = birthDate.Time
	result.RookieYear = rookieYear.Time
	result.Created = created.Time
	result.Updated = updated.Time

	return &result, nil
}

func (db *postgresDB) getChangesByID(ctx context.Context, id string) ([]model.Change, error) {
	const query = `SELECT created, prop, old, new FROM player_changes WHERE player=@id ORDER BY created DESC`

	args := pgx.NamedArgs{
		"id": id,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	changes := make([]model.Change, 0, 16)
	for rows.Next() {
		var created pgtype.Timestamptz
		c := model.Change{}
		err := rows.Scan(&created, &c.PropertyName, &c.OldValue, &c.NewValue)
		if err != nil {
			return nil, fmt.Errorf("error scanning player change: %w", err)
		}
		c.Time = created.Time

		changes = append(changes, c)
	}

	return changes, nil
}

func (db *postgresDB) insertPlayer(ctx context.Context, p *model.Player) error {
	if p == nil {
		return errors.New("insertPlayer - player is nil")
	}
	const query = `INSERT INTO players (
		id,
		name_first,
		name_last,
		position,
		team,
		weight_lb,
		height_in,
		birth_date,
		rookie_year,
		seasons,
		draft_year,
		draft_round,
		draft_pick,
		championships,
		mvps,
		all_nba,
		active
	) VALUES (
		@id,
		@nameFirst,
		@nameLast,
		@position,
		@team,
		@weight,
		@height,
		@birthDate,
		@rookieYear,
		@seasons,
		@draftYear,
		@draftRound,
		@draftPick,
		@championships,
		@mvps,
		@allNBA,
		@active
	)`

	args := namedArgsForPlayer(p, db.clock)
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting player(%s): %w", p.ID, err)
	}

	if p.Nickname1 != "" {
		if err := savePlayerNickname(ctx, tx, p.ID, p.Nickname1); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting transaction: %w", err)
	}

	return nil
}

func (db *postgresDB) updatePlayer(ctx context.Context, old, new *model.Player) error {
	const update = `UPDATE players
		SET name_first=@nameFirst,
			name_last=@nameLast,
			position=@position,
			team=@team,
			weight_lb=@weight,
			height_in=@height,
			birth_date=@birthDate,
			rookie_year=@rookieYear,
			seasons=@seasons,
			draft_year=@draftYear,
			draft_round=@draftRound,
			draft_pick=@draftPick,
			championships=@championships,
			mvps=@mvps,
			all_nba=@allNBA,
			active=@active,
			updated=@updated
		WHERE id=@id`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	changes := db.calculateChanges(old, new)

	// Don't delete the nickname just because it is empty. The scraped pages
	// rarely repeat a player's nickname, so re-ingests would wipe it out.
	if new.Nickname1 != "" && new.Nickname1 != old.Nickname1 {
		change := model.Change{
			Time:         db.clock.Now().UTC(),
			PropertyName: "Nickname1",
			OldValue:     old.Nickname1,
			NewValue:     new.Nickname1,
		}
		changes = append(changes, change)

		if err := savePlayerNickname(ctx, tx, new.ID, new.Nickname1); err != nil {
			return err
		}
	}

	if len(changes) == 0 {
		// There are no changes for the player
		return nil
	}

	args := namedArgsForPlayer(new, db.clock)
	_, err = tx.Exec(ctx, update, args)
	if err != nil {
		return fmt.Errorf("error updating player (%s): %w", new.ID, err)
	}

	for _, change := range changes {
		err := insertPlayerChange(ctx, tx, new.ID, &change)
		if err != nil {
			return fmt.Errorf("error inserting player change: %w", err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("error commiting player transaction: %w", err)
	}

	new.Changes = append(new.Changes, changes...)
	slices.SortFunc(new.Changes, func(a, b model.Change) int {
		return b.Time.Compare(a.Time)
	})

	return nil
}

func savePlayerNickname(ctx context.Context, tx pgx.Tx, id string, nickname string) error {
	const query = `UPDATE players SET nickname1=@nickname1 WHERE id=@id`

	args := pgx.NamedArgs{
		"id": id,
		"nickname1": sql.NullString{
			String: nickname,
			Valid:  nickname != "",
		},
	}
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error setting player nickname (%s): %w", id, err)
	}

	return nil
}

func insertPlayerChange(ctx context.Context, tx pgx.Tx, id string, change *model.Change) error {
	const insertChange = `INSERT INTO player_changes(
		player,
		prop,
		old,
		new
	) VALUES (
		@playerId,
		@prop,
		@old,
		@new
	)`

	args := pgx.NamedArgs{
		"playerId": id,
		"prop":     change.PropertyName,
		"old":      change.OldValue,
		"new":      change.NewValue,
	}
	_, err := tx.Exec(ctx, insertChange, args)
	return err
}

func (db *postgresDB) calculateChanges(old, new *model.Player) []model.Change {
	changes := make([]model.Change, 0, 1)

	// Nickname1 is handled separately in updatePlayer since re-ingests are
	// not allowed to clear it.

	changes = checkChange(changes, db.clock, "FirstName", old.FirstName, new.FirstName)
	changes = checkChange(changes, db.clock, "LastName", old.LastName, new.LastName)
	changes = checkChange(changes, db.clock, "Position", string(old.Position), string(new.Position))
	changes = checkChange(changes, db.clock, "Team", old.Team.String(), new.Team.String())
	changes = checkChangeInt(changes, db.clock, "Weight", old.Weight, new.Weight)
	changes = checkChangeInt(changes, db.clock, "Height", old.Height, new.Height)
	changes = checkChange(changes, db.clock, "BirthDate", old.FormattedBirthDate(), new.FormattedBirthDate())
	changes = checkChange(changes, db.clock, "RookieYear", old.FormattedRookieYear(), new.FormattedRookieYear())
	changes = checkChangeInt(changes, db.clock, "Seasons", old.Seasons, new.Seasons)
	changes = checkChangeInt(changes, db.clock, "DraftYear", old.DraftYear, new.DraftYear)
	changes = checkChangeInt(changes, db.clock, "DraftRound", old.DraftRound, new.DraftRound)
	changes = checkChangeInt(changes, db.clock, "DraftPick", old.DraftPick, new.DraftPick)
	changes = checkChangeInt(changes, db.clock, "Championships", old.Championships, new.Championships)
	changes = checkChangeInt(changes, db.clock, "MVPs", old.MVPs, new.MVPs)
	changes = checkChangeInt(changes, db.clock, "AllNBA", old.AllNBA, new.AllNBA)
	changes = checkChange(changes, db.clock, "Active", fmt.Sprintf("%v", old.Active), fmt.Sprintf("%v", new.Active))

	return changes
}

func checkChange(changes []model.Change, clock clock.Clock, prop, old, new string) []model.Change {
	if old != new {
		c := model.Change{
			Time:         clock.Now().UTC(),
			PropertyName: prop,
			OldValue:     old,
			NewValue:     new,
		}
		changes = append(changes, c)
	}
	return changes
}

func checkChangeInt(changes []model.Change, clock clock.Clock, prop string, old, new int) []model.Change {
	return checkChange(changes, clock, prop, fmt.Sprintf("%d", old), fmt.Sprintf("%d", new))
}

func namedArgsForPlayer(p *model.Player, clock clock.Clock) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":        p.ID,
		"nameFirst": p.FirstName,
		"nameLast":  p.LastName,
		"nickname1": sql.NullString{
			String: p.Nickname1,
			Valid:  p.Nickname1 != "",
		},
		"position": &DBPosition{position: p.Position},
		"team":     &DBNBATeam{team: p.Team},
		"weight":   p.Weight,
		"height":   p.Height,
		"birthDate": pgtype.Date{
			Time:  p.BirthDate,
			Valid: !p.BirthDate.IsZero(),
		},
		"rookieYear": pgtype.Date{
			Time:  p.RookieYear,
			Valid: !p.RookieYear.IsZero(),
		},
		"seasons":       p.Seasons,
		"draftYear":     p.DraftYear,
		"draftRound":    p.DraftRound,
		"draftPick":     p.DraftPick,
		"championships": p.Championships,
		"mvps":          p.MVPs,
		"allNBA":        p.AllNBA,
		"active":        p.Active,
		"updated": pgtype.Timestamptz{
			Time:             clock.Now().UTC(),
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
	}
}
