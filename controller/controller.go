package controller

import (
	"context"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/hooprank/hooprank/db"
	"github.com/hooprank/hooprank/model"
	"github.com/hooprank/hooprank/scrape"
	"golang.org/x/oauth2"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	Search(ctx context.Context, query string) ([]model.Player, error)
	// Updates a player's nickname, or deletes it if the nickname == ""
	// Returns an error if not successful, nil otherwise.
	UpdatePlayerNickname(ctx context.Context, id, nickname string) error
	GetStatLines(ctx context.Context, playerID string) ([]model.StatLine, error)

	// IngestEdition scrapes a published list page and stores it as a new
	// edition, creating or refreshing player records along the way. When the
	// page's publication date matches the most recent stored edition of the
	// same list it is treated as already ingested and the stored edition is
	// returned unchanged.
	IngestEdition(ctx context.Context, pageURL string) (*model.Edition, error)
	GetEdition(ctx context.Context, id int32) (*model.Edition, error)
	ListEditions(ctx context.Context) ([]model.Edition, error)
	DeleteEdition(ctx context.Context, id int32) error
	GetCommentary(ctx context.Context, editionID int32, playerID string) ([]model.Commentary, error)
	GetRankHistory(ctx context.Context, playerID, listName string) (*model.RankHistory, error)

	RunPeriodicIngest(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	// Editor sign-in. Mutating web routes require a valid session.
	OAuthStart() (string, error)
	OAuthExchange(ctx context.Context, state, code string) error
	SessionValid(state string) bool
	EditorSignedIn(ctx context.Context) bool
}

type controller struct {
	clock       clock.Clock
	scrape      scrape.Client
	db          db.DB
	oauthConfig *oauth2.Config
	editor      string
	sourceURLs  []string

	mu          sync.Mutex
	oauthStates map[string]*oauthState
}

func New(clock clock.Clock, scrape scrape.Client, db db.DB, oauthConfig *oauth2.Config, editor string, sourceURLs []string) (C, error) {
	c := &controller{
		clock:       clock,
		scrape:      scrape,
		db:          db,
		oauthConfig: oauthConfig,
		editor:      editor,
		sourceURLs:  sourceURLs,
		oauthStates: make(map[string]*oauthState),
	}
	return c, nil
}
