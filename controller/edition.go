package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hooprank/hooprank/db"
	"github.com/hooprank/hooprank/model"
	"github.com/hooprank/hooprank/scrape"
)

func (c *controller) IngestEdition(ctx context.Context, pageURL string) (*model.Edition, error) {
	page, err := c.scrape.LoadListPage(pageURL)
	if err != nil {
		return nil, err
	}

	prev, err := c.db.GetLatestEdition(ctx, page.ListName)
	if err != nil && !errors.Is(err, db.ErrEditionNotFound) {
		return nil, fmt.Errorf("error looking up latest %s edition: %w", page.ListName, err)
	}

	if prev != nil && prev.Published.Equal(page.Published) {
		log.Printf("%s edition published %s is already ingested as %d, skipping",
			page.ListName, page.Published.Format(time.DateOnly), prev.ID)
		return prev, nil
	}

	edition := &model.Edition{
		ListName:  page.ListName,
		Label:     page.Title,
		Published: page.Published,
	}
	for i, name := range page.Tiers {
		edition.Tiers = append(edition.Tiers, model.Tier{Name: name, Order: int32(i + 1)})
	}

	commentary := make([]model.Commentary, 0, len(page.Blocks))
	for i := range page.Blocks {
		block := &page.Blocks[i]

		playerID, err := c.resolvePlayer(ctx, block)
		if err != nil {
			return nil, err
		}

		if block.Season != "" {
			s := block.Stats
			s.PlayerID = playerID
			s.Season = block.Season
			if err := c.db.SaveStatLine(ctx, &s); err != nil {
				return nil, err
			}
		}

		entry := model.Entry{
			Rank:     block.Rank,
			PlayerID: playerID,
			Tier:     block.Tier,
		}
		if prev != nil {
			if prevRank, ok := rankIn(prev, playerID); ok {
				movement := prevRank - block.Rank // climbing means a smaller rank number
				entry.Movement = &movement
			}
		}
		edition.Entries = append(edition.Entries, entry)

		if block.Analysis != "" {
			commentary = append(commentary, model.Commentary{
				PlayerID: playerID,
				Author:   page.Author,
				Kind:     model.CommentaryAnalysis,
				Body:     block.Analysis,
			})
		}
		if block.Update != "" {
			commentary = append(commentary, model.Commentary{
				PlayerID: playerID,
				Author:   page.Author,
				Kind:     model.CommentaryUpdate,
				Body:     block.Update,
			})
		}
	}

	stored, err := c.db.AddEdition(ctx, edition, commentary)
	if err != nil {
		return nil, fmt.Errorf("error storing %s edition: %w", page.ListName, err)
	}

	log.Printf("ingested %s edition %d with %d entries", stored.ListName, stored.ID, len(stored.Entries))
	return stored, nil
}

// resolvePlayer finds the stored player a scraped block refers to, creating
// the record when the player has never appeared in an ingested list. The
// scraped bio always wins: these pages are the system of record for the
// dataset, so an existing record is refreshed from the block.
func (c *controller) resolvePlayer(ctx context.Context, block *scrape.PlayerBlock) (string, error) {
	name := model.TrimNameSuffix(block.Name)

	matches, err := c.db.Search(ctx, name, block.Bio.Position, nil)
	if err != nil {
		return "", fmt.Errorf("error finding player %s: %w", block.Name, err)
	}

	if len(matches) == 0 {
		// Retry without the position - the pages are not consistent about
		// whether a combo player is listed at G, SG, or SF.
		matches, err = c.db.Search(ctx, name, model.POS_UNKNOWN, nil)
		if err != nil {
			return "", fmt.Errorf("error finding player %s: %w", block.Name, err)
		}
	}

	if len(matches) > 1 {
		return "", fmt.Errorf("found more than 1 match for %s, got %d", block.Name, len(matches))
	}

	p := block.ToPlayer()
	if len(matches) == 1 {
		p.ID = matches[0].ID
	}

	if err := c.db.SavePlayer(ctx, p); err != nil {
		return "", fmt.Errorf("error saving player %s: %w", block.Name, err)
	}

	return p.ID, nil
}

func rankIn(e *model.Edition, playerID string) (int32, bool) {
	for _, entry := range e.Entries {
		if entry.PlayerID == playerID {
			return entry.Rank, true
		}
	}
	return 0, false
}

func (c *controller) GetEdition(ctx context.Context, id int32) (*model.Edition, error) {
	return c.db.GetEdition(ctx, id)
}

func (c *controller) ListEditions(ctx context.Context) ([]model.Edition, error) {
	return c.db.ListEditions(ctx)
}

func (c *controller) DeleteEdition(ctx context.Context, id int32) error {
	return c.db.DeleteEdition(ctx, id)
}

func (c *controller) GetCommentary(ctx context.Context, editionID int32, playerID string) ([]model.Commentary, error) {
	return c.db.GetCommentary(ctx, editionID, playerID)
}

func (c *controller) GetRankHistory(ctx context.Context, playerID, listName string) (*model.RankHistory, error) {
	return c.db.GetRankHistory(ctx, playerID, listName)
}

func (c *controller) RunPeriodicIngest(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			for _, u := range c.sourceURLs {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				if _, err := c.IngestEdition(ctx, u); err != nil {
					log.Printf("error ingesting %s: %v", u, err)
				}
				cancel()
			}
		}
	}
}
