package mockdb

import (
	"context"

	"github.com/hooprank/hooprank/model"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

type DB struct {
	mock.Mock
}

func (db *DB) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	args := db.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (db *DB) SavePlayer(ctx context.Context, p *model.Player) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) DeleteNickname(ctx context.Context, id, oldNickname string) error {
	args := db.Called(ctx, id, oldNickname)
	return args.Error(0)
}

func (db *DB) Search(ctx context.Context, query string, pos model.Position, team *model.NBATeam) ([]model.Player, error) {
	args := db.Called(ctx, query, pos, team)

	var r []model.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Player)
	}
	return r, args.Error(1)
}

func (db *DB) SaveStatLine(ctx context.Context, s *model.StatLine) error {
	args := db.Called(ctx, s)
	return args.Error(0)
}

func (db *DB) GetStatLines(ctx context.Context, playerID string) ([]model.StatLine, error) {
	args := db.Called(ctx, playerID)

	var r []model.StatLine
	if args.Get(0) != nil {
		r = args.Get(0).([]model.StatLine)
	}
	return r, args.Error(1)
}

func (db *DB) ListEditions(ctx context.Context) ([]model.Edition, error) {
	args := db.Called(ctx)

	var r []model.Edition
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Edition)
	}
	return r, args.Error(1)
}

func (db *DB) GetEdition(ctx context.Context, id int32) (*model.Edition, error) {
	args := db.Called(ctx, id)

	var e *model.Edition
	if args.Get(0) != nil {
		e = args.Get(0).(*model.Edition)
	}
	return e, args.Error(1)
}

func (db *DB) GetLatestEdition(ctx context.Context, listName string) (*model.Edition, error) {
	args := db.Called(ctx, listName)

	var e *model.Edition
	if args.Get(0) != nil {
		e = args.Get(0).(*model.Edition)
	}
	return e, args.Error(1)
}

func (db *DB) AddEdition(ctx context.Context, e *model.Edition, commentary []model.Commentary) (*model.Edition, error) {
	args := db.Called(ctx, e, commentary)

	var r *model.Edition
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Edition)
	}
	return r, args.Error(1)
}

func (db *DB) DeleteEdition(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) GetCommentary(ctx context.Context, editionID int32, playerID string) ([]model.Commentary, error) {
	args := db.Called(ctx, editionID, playerID)

	var r []model.Commentary
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Commentary)
	}
	return r, args.Error(1)
}

func (db *DB) GetRankHistory(ctx context.Context, playerID, listName string) (*model.RankHistory, error) {
	args := db.Called(ctx, playerID, listName)

	var h *model.RankHistory
	if args.Get(0) != nil {
		h = args.Get(0).(*model.RankHistory)
	}
	return h, args.Error(1)
}

func (db *DB) SaveToken(ctx context.Context, editor string, token *oauth2.Token) error {
	args := db.Called(ctx, editor, token)
	return args.Error(0)
}

func (db *DB) GetToken(ctx context.Context, editor string) (*oauth2.Token, error) {
	args := db.Called(ctx, editor)

	var t *oauth2.Token
	if args.Get(0) != nil {
		t = args.Get(0).(*oauth2.Token)
	}
	return t, args.Error(1)
}
