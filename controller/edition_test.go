package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hooprank/hooprank/db"
	"github.com/hooprank/hooprank/db/mockdb"
	"github.com/hooprank/hooprank/model"
	"github.com/hooprank/hooprank/scrape"
	"github.com/hooprank/hooprank/scrape/mockscrape"
	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/mock"
)

func TestIngestEdition(t *testing.T) {
	ctx := context.Background()

	ctrl, testCtrl := controllerForTest()
	defer testCtrl.Close()

	ed, err := ctrl.IngestEdition(ctx, testCtrl.Top100URL())
	if err != nil {
		t.Fatalf("unexpected error ingesting top 100: %v", err)
	}
	if ed.ListName != model.ListTop100 {
		t.Errorf("unexpected list name: %s", ed.ListName)
	}
	if ed.Label != "The Top 100 NBA Players of 2025" {
		t.Errorf("unexpected label: %s", ed.Label)
	}

	full, err := ctrl.GetEdition(ctx, ed.ID)
	if err != nil {
		t.Fatalf("error getting ingested edition: %v", err)
	}
	if len(full.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(full.Entries))
	}
	expected := []struct {
		rank int32
		id   string
	}{
		{rank: 1, id: "nikola-jokic"},
		{rank: 2, id: "shai-gilgeous-alexander"},
		{rank: 3, id: "luka-doncic"},
	}
	for i, ex := range expected {
		if full.Entries[i].Rank != ex.rank {
			t.Errorf("entries[%d].Rank - expected %d, got %d", i, ex.rank, full.Entries[i].Rank)
		}
		if full.Entries[i].PlayerID != ex.id {
			t.Errorf("entries[%d].PlayerID - expected %s, got %s", i, ex.id, full.Entries[i].PlayerID)
		}
		// The first ingested edition of a list has nothing to move from.
		if full.Entries[i].Movement != nil {
			t.Errorf("entries[%d].Movement - expected nil, got %d", i, *full.Entries[i].Movement)
		}
	}

	// The stat lines from the page are stored per player and season.
	stats, err := ctrl.GetStatLines(ctx, "nikola-jokic")
	if err != nil {
		t.Fatalf("error getting stat lines: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 stat line, got %d", len(stats))
	}
	if stats[0].Season != "2024-25" {
		t.Errorf("unexpected season: %s", stats[0].Season)
	}
	if stats[0].Points != 29.6 || stats[0].TrueShooting != 66.3 || stats[0].GamesPlayed != 70 {
		t.Errorf("stat line values not as expected: %+v", stats[0])
	}

	// Commentary is attributed to the page author and split by kind.
	cm, err := ctrl.GetCommentary(ctx, ed.ID, "luka-doncic")
	if err != nil {
		t.Fatalf("error getting commentary: %v", err)
	}
	if len(cm) != 2 {
		t.Fatalf("expected analysis and update commentary, got %d entries", len(cm))
	}
	for _, c := range cm {
		if c.Author != "Zach Harper" {
			t.Errorf("unexpected author: %s", c.Author)
		}
	}
	analysis := cm[0]
	if analysis.Kind != model.CommentaryAnalysis {
		analysis = cm[1]
	}
	if !strings.Contains(analysis.Body, "midseason trade") {
		t.Errorf("analysis body missing expected text: %s", analysis.Body)
	}
	if strings.Contains(analysis.Body, "w=128") {
		t.Errorf("image CDN params should have been stripped: %s", analysis.Body)
	}

	// Ingesting the same page again is a no-op that returns the stored edition.
	again, err := ctrl.IngestEdition(ctx, testCtrl.Top100URL())
	if err != nil {
		t.Fatalf("unexpected error re-ingesting: %v", err)
	}
	if again.ID != ed.ID {
		t.Errorf("expected the stored edition %d, got %d", ed.ID, again.ID)
	}
}

func TestIngestEdition_tradeValue(t *testing.T) {
	ctx := context.Background()

	ctrl, testCtrl := controllerForTest()
	defer testCtrl.Close()

	ed, err := ctrl.IngestEdition(ctx, testCtrl.TradeValueURL())
	if err != nil {
		t.Fatalf("unexpected error ingesting trade value list: %v", err)
	}
	if ed.ListName != model.ListTradeValue {
		t.Errorf("unexpected list name: %s", ed.ListName)
	}

	full, err := ctrl.GetEdition(ctx, ed.ID)
	if err != nil {
		t.Fatalf("error getting ingested edition: %v", err)
	}
	if len(full.Tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(full.Tiers))
	}
	if full.Tiers[0].Name != "Completely and Utterly Untouchable" {
		t.Errorf("unexpected first tier: %s", full.Tiers[0].Name)
	}
	if full.Entries[0].Tier != "Completely and Utterly Untouchable" {
		t.Errorf("unexpected tier for entry 0: %s", full.Entries[0].Tier)
	}

	// Zach LaVine has never appeared in an ingested list before, so the
	// record is created from the scraped bio.
	p, err := ctrl.GetPlayer(ctx, "zach-lavine")
	if err != nil {
		t.Fatalf("expected zach-lavine to have been created: %v", err)
	}
	if p.FirstName != "Zach" || p.LastName != "LaVine" {
		t.Errorf("unexpected player name: %s %s", p.FirstName, p.LastName)
	}

	// The player now has rank history in this list.
	h, err := ctrl.GetRankHistory(ctx, "victor-wembanyama", model.ListTradeValue)
	if err != nil {
		t.Fatalf("error getting rank history: %v", err)
	}
	if len(h.Points) != 1 {
		t.Fatalf("expected 1 history point, got %d", len(h.Points))
	}
	if h.Points[0].Rank != 1 {
		t.Errorf("expected rank 1, got %d", h.Points[0].Rank)
	}
}

func TestIngestEdition_badPage(t *testing.T) {
	ctx := context.Background()

	ctrl, testCtrl := controllerForTest()
	defer testCtrl.Close()

	_, err := ctrl.IngestEdition(ctx, fmt.Sprintf("%s/nba/broken", testCtrl.SourceURL()))
	if err == nil {
		t.Fatal("expected an error ingesting a page with no article body")
	}
}

// Movement is computed against the most recent stored edition of the same list.
func TestIngestEdition_movement(t *testing.T) {
	ctx := context.Background()

	published := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	page := &scrape.ListPage{
		Title:     "The Top 100 NBA Players of 2025",
		ListName:  model.ListTop100,
		Author:    "Zach Harper",
		Published: published,
		Blocks: []scrape.PlayerBlock{
			{Rank: 1, Name: "Nikola Jokic", Bio: scrape.BioLine{Position: model.POS_C, Team: model.TEAM_DEN}},
		},
	}

	prev := &model.Edition{
		ID:        7,
		ListName:  model.ListTop100,
		Published: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		Entries: []model.Entry{
			{Rank: 3, PlayerID: "nikola-jokic"},
		},
	}

	mockScrape := &mockscrape.Client{}
	mockDB := &mockdb.DB{}
	ctrl, err := New(clock.New(), mockScrape, mockDB, nil, "", nil)
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}

	mockScrape.On("LoadListPage", "http://example.com/top-100").Return(page, nil)
	mockDB.On("GetLatestEdition", mock.Anything, model.ListTop100).Return(prev, nil)
	mockDB.On("Search", mock.Anything, "Nikola Jokic", model.POS_C, (*model.NBATeam)(nil)).
		Return([]model.Player{{ID: "nikola-jokic"}}, nil)
	mockDB.On("SavePlayer", mock.Anything, mock.Anything).Return(nil)
	mockDB.On("AddEdition", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			e := args.Get(1).(*model.Edition)
			if len(e.Entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(e.Entries))
			}
			if e.Entries[0].Movement == nil {
				t.Fatal("expected movement to be set")
			}
			if *e.Entries[0].Movement != 2 {
				t.Errorf("expected movement +2, got %d", *e.Entries[0].Movement)
			}
		}).
		Return(&model.Edition{ID: 8, ListName: model.ListTop100, Published: published}, nil)

	if _, err := ctrl.IngestEdition(ctx, "http://example.com/top-100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mockDB.AssertExpectations(t)
}

func TestIngestEdition_ambiguousPlayer(t *testing.T) {
	ctx := context.Background()

	page := &scrape.ListPage{
		Title:     "The Top 100 NBA Players of 2025",
		ListName:  model.ListTop100,
		Published: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Blocks: []scrape.PlayerBlock{
			{Rank: 1, Name: "Jalen Williams", Bio: scrape.BioLine{Position: model.POS_SF, Team: model.TEAM_OKC}},
		},
	}

	mockScrape := &mockscrape.Client{}
	mockDB := &mockdb.DB{}
	ctrl, err := New(clock.New(), mockScrape, mockDB, nil, "", nil)
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}

	// Two stored players match the name, which cannot be resolved automatically.
	matches := []model.Player{{ID: "jalen-williams"}, {ID: "jaylin-williams"}}
	mockScrape.On("LoadListPage", "http://example.com/top-100").Return(page, nil)
	mockDB.On("GetLatestEdition", mock.Anything, model.ListTop100).Return(nil, errors.New("no edition found for list"))

	_, err = ctrl.IngestEdition(ctx, "http://example.com/top-100")
	if err == nil {
		t.Fatal("expected an error when the latest edition lookup fails")
	}

	mockDB2 := &mockdb.DB{}
	ctrl2, err := New(clock.New(), mockScrape, mockDB2, nil, "", nil)
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}
	mockDB2.On("GetLatestEdition", mock.Anything, model.ListTop100).Return(nil, db.ErrEditionNotFound)
	mockDB2.On("Search", mock.Anything, "Jalen Williams", model.POS_SF, (*model.NBATeam)(nil)).Return(matches, nil)

	_, err = ctrl2.IngestEdition(ctx, "http://example.com/top-100")
	if err == nil || !strings.Contains(err.Error(), "more than 1 match") {
		t.Errorf("expected an ambiguous match error, got: %v", err)
	}
}
