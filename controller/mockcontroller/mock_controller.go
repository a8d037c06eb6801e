package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/hooprank/hooprank/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	args := c.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (c *C) Search(ctx context.Context, query string) ([]model.Player, error) {
	args := c.Called(ctx, query)

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}

	return res, args.Error(1)
}

func (c *C) UpdatePlayerNickname(ctx context.Context, id, nickname string) error {
	args := c.Called(ctx, id, nickname)
	return args.Error(0)
}

func (c *C) GetStatLines(ctx context.Context, playerID string) ([]model.StatLine, error) {
	args := c.Called(ctx, playerID)

	var res []model.StatLine
	if args.Get(0) != nil {
		res = args.Get(0).([]model.StatLine)
	}

	return res, args.Error(1)
}

func (c *C) IngestEdition(ctx context.Context, pageURL string) (*model.Edition, error) {
	args := c.Called(ctx, pageURL)

	var e *model.Edition
	if args.Get(0) != nil {
		e = args.Get(0).(*model.Edition)
	}

	return e, args.Error(1)
}

func (c *C) GetEdition(ctx context.Context, id int32) (*model.Edition, error) {
	args := c.Called(ctx, id)

	var e *model.Edition
	if args.Get(0) != nil {
		e = args.Get(0).(*model.Edition)
	}

	return e, args.Error(1)
}

func (c *C) ListEditions(ctx context.Context) ([]model.Edition, error) {
	args := c.Called(ctx)

	var res []model.Edition
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Edition)
	}

	return res, args.Error(1)
}

func (c *C) DeleteEdition(ctx context.Context, id int32) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *C) GetCommentary(ctx context.Context, editionID int32, playerID string) ([]model.Commentary, error) {
	args := c.Called(ctx, editionID, playerID)

	var res []model.Commentary
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Commentary)
	}

	return res, args.Error(1)
}

func (c *C) GetRankHistory(ctx context.Context, playerID, listName string) (*model.RankHistory, error) {
	args := c.Called(ctx, playerID, listName)

	var h *model.RankHistory
	if args.Get(0) != nil {
		h = args.Get(0).(*model.RankHistory)
	}

	return h, args.Error(1)
}

func (c *C) RunPeriodicIngest(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

func (c *C) OAuthStart() (string, error) {
	args := c.Called()
	return args.String(0), args.Error(1)
}

func (c *C) OAuthExchange(ctx context.Context, state, code string) error {
	args := c.Called(ctx, state, code)
	return args.Error(0)
}

func (c *C) SessionValid(state string) bool {
	args := c.Called(state)
	return args.Bool(0)
}

func (c *C) EditorSignedIn(ctx context.Context) bool {
	args := c.Called(ctx)
	return args.Bool(0)
}
