package scrape

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/hooprank/hooprank/model"
)

func loadTestPage(t *testing.T, name string) *ListPage {
	t.Helper()

	f, err := os.Open("testdata/" + name)
	if err != nil {
		t.Fatalf("error opening testdata file: %v", err)
	}
	defer f.Close()

	page, err := ParseListPage(f)
	if err != nil {
		t.Fatalf("error parsing %s: %v", name, err)
	}
	return page
}

func TestParseListPage_top100(t *testing.T) {
	page := loadTestPage(t, "top100.html")

	if page.Title != "The Top 100 NBA Players of 2025" {
		t.Errorf("unexpected title: %q", page.Title)
	}
	if page.ListName != model.ListTop100 {
		t.Errorf("expected list %s, got %s", model.ListTop100, page.ListName)
	}
	if page.Author != "Zach Harper" {
		t.Errorf("unexpected author: %q", page.Author)
	}
	if page.Published.Format("2006-01-02") != "2025-06-10" {
		t.Errorf("unexpected published date: %v", page.Published)
	}
	if len(page.Tiers) != 0 {
		t.Errorf("expected no tiers in the top 100 list, got %v", page.Tiers)
	}
	if len(page.Blocks) != 3 {
		t.Fatalf("expected 3 player blocks, got %d", len(page.Blocks))
	}

	// Blocks are in page order, which for this list is countdown order.
	luka := page.Blocks[0]
	if luka.Rank != 3 || luka.Name != "Luka Doncic" {
		t.Errorf("unexpected first block: %d %s", luka.Rank, luka.Name)
	}
	if luka.Bio.Age != 26 || luka.Bio.Seasons != 7 {
		t.Errorf("unexpected luka bio: age=%d seasons=%d", luka.Bio.Age, luka.Bio.Seasons)
	}
	if luka.Stats.Points != 28.2 || luka.Stats.TrueShooting != 57.0 {
		t.Errorf("unexpected luka stats: %v", luka.Stats)
	}
	if luka.Season != "2024-25" {
		t.Errorf("unexpected season: %q", luka.Season)
	}
	if !strings.Contains(luka.Analysis, "midseason trade") {
		t.Errorf("analysis is missing expected text: %q", luka.Analysis)
	}
	if !strings.Contains(luka.Update, "first-round exit") {
		t.Errorf("update is missing expected text: %q", luka.Update)
	}
	// Pull quotes and ad units are not commentary.
	if strings.Contains(luka.Analysis, "sees passes") {
		t.Errorf("analysis includes aside content: %q", luka.Analysis)
	}
	if strings.Contains(luka.Analysis, "ADVERTISEMENT") {
		t.Errorf("analysis includes ad content: %q", luka.Analysis)
	}
	// The CDN's responsive image params are stripped from the markdown.
	if strings.Contains(luka.Analysis, "w=128") {
		t.Errorf("image params were not stripped: %q", luka.Analysis)
	}
	if !strings.Contains(luka.Analysis, "https://cdn.example.com/img/luka.jpg") {
		t.Errorf("image reference is missing: %q", luka.Analysis)
	}

	jokic := page.Blocks[2]
	if jokic.Rank != 1 || jokic.Name != "Nikola Jokic" {
		t.Errorf("unexpected final block: %d %s", jokic.Rank, jokic.Name)
	}
	if jokic.Stats.Points != 29.6 || jokic.Stats.TrueShooting != 66.3 {
		t.Errorf("unexpected jokic stats: %v", jokic.Stats)
	}
	if jokic.Update != "" {
		t.Errorf("expected no update for jokic, got %q", jokic.Update)
	}
	if !strings.Contains(jokic.Analysis, "triple-double") {
		t.Errorf("jokic analysis missing expected text: %q", jokic.Analysis)
	}
	if strings.Contains(jokic.Analysis, "Offseason trade board") {
		t.Errorf("jokic analysis includes related-content rail: %q", jokic.Analysis)
	}
}

func TestParseListPage_tradeValue(t *testing.T) {
	page := loadTestPage(t, "tradevalue.html")

	if page.ListName != model.ListTradeValue {
		t.Errorf("expected list %s, got %s", model.ListTradeValue, page.ListName)
	}
	if len(page.Tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %v", page.Tiers)
	}
	// Tier order is editorial page order, never sorted.
	if page.Tiers[0] != "Completely and Utterly Untouchable" || page.Tiers[1] != "Trade Candidates" {
		t.Errorf("unexpected tier order: %v", page.Tiers)
	}

	if len(page.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(page.Blocks))
	}
	if page.Blocks[0].Tier != "Completely and Utterly Untouchable" {
		t.Errorf("unexpected tier for wembanyama: %q", page.Blocks[0].Tier)
	}
	if page.Blocks[1].Tier != "Completely and Utterly Untouchable" {
		t.Errorf("unexpected tier for jokic: %q", page.Blocks[1].Tier)
	}
	if page.Blocks[2].Tier != "Trade Candidates" {
		t.Errorf("unexpected tier for lavine: %q", page.Blocks[2].Tier)
	}

	if page.Blocks[2].Update == "" {
		t.Error("expected a July update block for lavine")
	}
}

func TestParseListPage_duplicateRank(t *testing.T) {
	const page = `<html><body><article>
		<h1>Top 100</h1>
		<div class="article-body">
			<h3>5. Player One</h3>
			<p class="bio">C, Miami Heat | 6'9", 250 lbs | Age28, 8 Seasons</p>
			<p class="stats">pts15.1</p>
			<h3>5. Player Two</h3>
			<p class="bio">PG, Miami Heat | 6'1", 180 lbs | Age24, 3 Seasons</p>
			<p class="stats">pts12.3</p>
		</div>
	</article></body></html>`

	if _, err := ParseListPage(strings.NewReader(page)); err == nil {
		t.Error("expected an error for duplicate ranks")
	}
}

func TestParseListPage_noBlocks(t *testing.T) {
	const page = `<html><body><article><h1>Hi</h1><div class="article-body"><p>Nothing here.</p></div></article></body></html>`
	if _, err := ParseListPage(strings.NewReader(page)); err == nil {
		t.Error("expected an error for a page with no player blocks")
	}
}

func TestClientLoadListPage(t *testing.T) {
	html, err := os.ReadFile("testdata/top100.html")
	if err != nil {
		t.Fatalf("error reading testdata: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/nba/top-100" {
			w.Write(html)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c, err := New()
	if err != nil {
		t.Fatalf("error creating client: %v", err)
	}

	page, err := c.LoadListPage(server.URL + "/nba/top-100")
	if err != nil {
		t.Fatalf("error loading page: %v", err)
	}
	if len(page.Blocks) != 3 {
		t.Errorf("expected 3 blocks, got %d", len(page.Blocks))
	}

	if _, err := c.LoadListPage(server.URL + "/nba/missing"); err == nil {
		t.Error("expected an error for a 404 page")
	}

	if _, err := c.LoadListPage("ftp://example.com/page"); err == nil {
		t.Error("expected an error for a non-http scheme")
	}
}
