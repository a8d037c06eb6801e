package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/hooprank/hooprank/model"
	"golang.org/x/oauth2"
)

func (db *postgresDB) ListEditions(ctx context.Context) ([]model.Edition, error) {
	const query = `SELECT id, list_name, label, published, created
		FROM editions ORDER BY published DESC, id DESC LIMIT 20`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying editions: %w", err)
	}

	results := make([]model.Edition, 0, 20)
	for rows.Next() {
		e, err := scanEdition(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}

	return results, nil
}

func (db *postgresDB) GetEdition(ctx context.Context, id int32) (*model.Edition, error) {
	const query = `SELECT id, list_name, label, published, created
		FROM editions WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	e, err := scanEdition(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEditionNotFound
		}
		return nil, err
	}

	if err := db.loadEditionContents(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (db *postgresDB) GetLatestEdition(ctx context.Context, listName string) (*model.Edition, error) {
	const query = `SELECT id, list_name, label, published, created
		FROM editions WHERE list_name=@listName
		ORDER BY published DESC, id DESC LIMIT 1`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"listName": listName})
	e, err := scanEdition(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEditionNotFound
		}
		return nil, err
	}

	if err := db.loadEditionContents(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (db *postgresDB) AddEdition(ctx context.Context, e *model.Edition, commentary []model.Commentary) (*model.Edition, error) {
	const insertEdition = `INSERT INTO editions (list_name, label, published)
		VALUES (@listName, @label, @published) RETURNING id, created`

	const insertTier = `INSERT INTO edition_tiers (edition_id, name, tier_order)
		VALUES (@editionID, @name, @tierOrder)`

	const insertEntry = `INSERT INTO edition_entries (edition_id, player_id, rank, tier, movement)
		VALUES (@editionID, @playerID, @rank, @tier, @movement)`

	const insertCommentary = `INSERT INTO commentary (edition_id, player_id, author, kind, body)
		VALUES (@editionID, @playerID, @author, @kind, @body)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"listName": e.ListName,
		"label":    e.Label,
		"published": pgtype.Date{
			Time:  e.Published,
			Valid: !e.Published.IsZero(),
		},
	}
	var created pgtype.Timestamptz
	if err := tx.QueryRow(ctx, insertEdition, args).Scan(&e.ID, &created); err != nil {
		return nil, fmt.Errorf("error inserting edition: %w", err)
	}
	e.Created = created.Time

	for _, t := range e.Tiers {
		args := pgx.NamedArgs{
			"editionID": e.ID,
			"name":      t.Name,
			"tierOrder": t.Order,
		}
		if _, err := tx.Exec(ctx, insertTier, args); err != nil {
			return nil, fmt.Errorf("error inserting tier %s: %w", t.Name, err)
		}
	}

	for _, entry := range e.Entries {
		var movement sql.NullInt32
		if entry.Movement != nil {
			movement = sql.NullInt32{Int32: *entry.Movement, Valid: true}
		}
		args := pgx.NamedArgs{
			"editionID": e.ID,
			"playerID":  entry.PlayerID,
			"rank":      entry.Rank,
			"tier": sql.NullString{
				String: entry.Tier,
				Valid:  entry.Tier != "",
			},
			"movement": movement,
		}
		if _, err := tx.Exec(ctx, insertEntry, args); err != nil {
			return nil, fmt.Errorf("error inserting entry for %s at rank %d: %w", entry.PlayerID, entry.Rank, err)
		}
	}

	for _, c := range commentary {
		args := pgx.NamedArgs{
			"editionID": e.ID,
			"playerID":  c.PlayerID,
			"author":    c.Author,
			"kind":      c.Kind,
			"body":      c.Body,
		}
		if _, err := tx.Exec(ctx, insertCommentary, args); err != nil {
			return nil, fmt.Errorf("error inserting commentary for %s: %w", c.PlayerID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error commiting edition transaction: %w", err)
	}

	return e, nil
}

func (db *postgresDB) DeleteEdition(ctx context.Context, id int32) error {
	// Tiers, entries, and commentary go with it via ON DELETE CASCADE.
	tag, err := db.pool.Exec(ctx, `DELETE FROM editions WHERE id=@id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting edition %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEditionNotFound
	}
	return nil
}

func (db *postgresDB) GetCommentary(ctx context.Context, editionID int32, playerID string) ([]model.Commentary, error) {
	const query = `SELECT edition_id, player_id, author, kind, body, created
		FROM commentary WHERE edition_id=@editionID AND player_id=@playerID
		ORDER BY kind`

	args := pgx.NamedArgs{
		"editionID": editionID,
		"playerID":  playerID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying commentary: %w", err)
	}

	results := make([]model.Commentary, 0, 2)
	for rows.Next() {
		var c model.Commentary
		var created pgtype.Timestamptz
		err := rows.Scan(&c.EditionID, &c.PlayerID, &c.Author, &c.Kind, &c.Body, &created)
		if err != nil {
			return nil, fmt.Errorf("error scanning commentary: %w", err)
		}
		c.Created = created.Time
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}

	return results, nil
}

func (db *postgresDB) GetRankHistory(ctx context.Context, playerID, listName string) (*model.RankHistory, error) {
	const query = `SELECT e.id, e.label, e.published, n.rank
		FROM edition_entries AS n
		INNER JOIN editions AS e ON n.edition_id=e.id
		WHERE n.player_id=@playerID AND e.list_name=@listName
		ORDER BY e.published ASC, e.id ASC`

	args := pgx.NamedArgs{
		"playerID": playerID,
		"listName": listName,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying rank history: %w", err)
	}

	h := &model.RankHistory{
		PlayerID: playerID,
		ListName: listName,
	}
	for rows.Next() {
		var p model.RankPoint
		var published pgtype.Date
		if err := rows.Scan(&p.EditionID, &p.Label, &published, &p.Rank); err != nil {
			return nil, fmt.Errorf("error scanning rank point: %w", err)
		}
		p.Published = published.Time
		h.Points = append(h.Points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}

	return h, nil
}

func (db *postgresDB) SaveToken(ctx context.Context, editor string, token *oauth2.Token) error {
	const query = `INSERT INTO editor_tokens (editor, access_token, refresh_token, token_type, expiry)
		VALUES (@editor, @accessToken, @refreshToken, @tokenType, @expiry)
		ON CONFLICT (editor) DO UPDATE SET
			access_token=@accessToken,
			refresh_token=@refreshToken,
			token_type=@tokenType,
			expiry=@expiry`

	args := pgx.NamedArgs{
		"editor":       editor,
		"accessToken":  token.AccessToken,
		"refreshToken": token.RefreshToken,
		"tokenType":    token.TokenType,
		"expiry": pgtype.Timestamptz{
			Time:             token.Expiry.UTC(),
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving token for %s: %w", editor, err)
	}
	return nil
}

func (db *postgresDB) GetToken(ctx context.Context, editor string) (*oauth2.Token, error) {
	const query = `SELECT access_token, refresh_token, token_type, expiry
		FROM editor_tokens WHERE editor=@editor`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"editor": editor})

	var t oauth2.Token
	var expiry pgtype.Timestamptz
	if err := row.Scan(&t.AccessToken, &t.RefreshToken, &t.TokenType, &expiry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("error scanning token for %s: %w", editor, err)
	}
	t.Expiry = expiry.Time

	return &t, nil
}

func scanEdition(row pgx.Row) (*model.Edition, error) {
	var e model.Edition
	var published pgtype.Date
	var created pgtype.Timestamptz
	if err := row.Scan(&e.ID, &e.ListName, &e.Label, &published, &created); err != nil {
		return nil, err
	}
	e.Published = published.Time
	e.Created = created.Time
	return &e, nil
}

func (db *postgresDB) loadEditionContents(ctx context.Context, e *model.Edition) error {
	const tierQuery = `SELECT name, tier_order FROM edition_tiers
		WHERE edition_id=@id ORDER BY tier_order ASC`

	const entryQuery = `SELECT n.rank, n.player_id, p.name_first, p.name_last,
			p.position, p.team, n.tier, n.movement
		FROM edition_entries AS n
		INNER JOIN players AS p ON n.player_id=p.id
		WHERE n.edition_id=@id ORDER BY n.rank ASC`

	args := pgx.NamedArgs{"id": e.ID}

	rows, err := db.pool.Query(ctx, tierQuery, args)
	if err != nil {
		return fmt.Errorf("error querying tiers: %w", err)
	}
	for rows.Next() {
		var t model.Tier
		if err := rows.Scan(&t.Name, &t.Order); err != nil {
			return fmt.Errorf("error scanning tier: %w", err)
		}
		e.Tiers = append(e.Tiers, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error with tier rows: %w", err)
	}

	rows, err = db.pool.Query(ctx, entryQuery, args)
	if err != nil {
		return fmt.Errorf("error querying entries: %w", err)
	}
	for rows.Next() {
		var entry model.Entry
		var pos DBPosition
		var team DBNBATeam
		var tier sql.NullString
		var movement sql.NullInt32
		err := rows.Scan(&entry.Rank, &entry.PlayerID, &entry.FirstName,
			&entry.LastName, &pos, &team, &tier, &movement)
		if err != nil {
			return fmt.Errorf("error scanning entry: %w", err)
		}
		entry.Position = pos.position
		entry.Team = team.team
		entry.Tier = valueOrEmpty(tier)
		if movement.Valid {
			m := movement.Int32
			entry.Movement = &m
		}
		e.Entries = append(e.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error with entry rows: %w", err)
	}

	return nil
}
