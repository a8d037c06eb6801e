package db

import (
	"context"

	"github.com/hooprank/hooprank/model"
	"golang.org/x/oauth2"
)

type DB interface {
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	SavePlayer(ctx context.Context, p *model.Player) error
	DeleteNickname(ctx context.Context, id string, oldNickname string) error
	Search(ctx context.Context, query string, pos model.Position, team *model.NBATeam) ([]model.Player, error)

	// Stat lines are keyed by (player, season) and overwritten on re-ingest.
	SaveStatLine(ctx context.Context, s *model.StatLine) error
	// Most recent season first.
	GetStatLines(ctx context.Context, playerID string) ([]model.StatLine, error)

	// Lists the 20 most recent editions. The most recent edition is returned
	// first. Only the edition metadata is filled in; the entries and tiers
	// are returned by GetEdition().
	ListEditions(ctx context.Context) ([]model.Edition, error)
	GetEdition(ctx context.Context, id int32) (*model.Edition, error)
	// GetLatestEdition returns the most recent edition of the named list with
	// its entries, or ErrEditionNotFound if none has been ingested yet.
	GetLatestEdition(ctx context.Context, listName string) (*model.Edition, error)
	// AddEdition stores the edition, its tiers, entries, and commentary in a
	// single transaction. The returned edition has its ID set.
	AddEdition(ctx context.Context, e *model.Edition, commentary []model.Commentary) (*model.Edition, error)
	DeleteEdition(ctx context.Context, id int32) error

	GetCommentary(ctx context.Context, editionID int32, playerID string) ([]model.Commentary, error)
	GetRankHistory(ctx context.Context, playerID, listName string) (*model.RankHistory, error)

	SaveToken(ctx context.Context, editor string, token *oauth2.Token) error
	GetToken(ctx context.Context, editor string) (*oauth2.Token, error)
}
