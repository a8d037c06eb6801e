package scrape

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/hooprank/hooprank/model"
)

// ListPage is the structured form of one published ranked-list article.
type ListPage struct {
	Title     string
	ListName  string // model.ListTop100 or model.ListTradeValue
	Author    string
	Published time.Time
	Tiers     []string // in page order; empty outside the trade value list
	Blocks    []PlayerBlock
}

// Selectors in the publication's article markup. Everything else in the
// page (nav, consent widgets, newsletter forms, related-content rails) is
// outside the article body and never visited.
const (
	selArticle = "article .article-body"
	selTitle   = "article h1"
	selByline  = "article .byline"
	selTime    = "article time"
)

// Classes of in-body elements that are advertising or related-content
// modules rather than editorial content.
var noiseClasses = []string{"ad-unit", "related", "newsletter", "ot-sdk-container"}

// ParseListPage extracts the ranked list from an article page.
//
// Within the article body, an h2 names a tier (trade value list only), an h3
// like "1. Nikola Jokic" opens a player block, and the block runs until the
// next heading. The first paragraph of a block is the bio line, the second
// is the stat strip, and the rest is commentary. An h4 inside a block
// switches the commentary from the analysis to the playoff/update review.
func ParseListPage(r io.Reader) (*ListPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing page html: %w", err)
	}

	page := &ListPage{
		Title:  strings.TrimSpace(doc.Find(selTitle).First().Text()),
		Author: parseByline(doc.Find(selByline).First().Text()),
	}

	if dt, ok := doc.Find(selTime).First().Attr("datetime"); ok {
		t, err := time.Parse(time.DateOnly, dt)
		if err != nil {
			log.Printf("error parsing article datetime %q: %v", dt, err)
		} else {
			page.Published = t
		}
	}

	body := doc.Find(selArticle).First()
	if body.Length() == 0 {
		return nil, fmt.Errorf("page has no article body")
	}

	var (
		current *PlayerBlock
		tier    string
		section string // "analysis" or "update"
		parts   map[string][]string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Analysis = toMarkdown(parts[model.CommentaryAnalysis])
		current.Update = toMarkdown(parts[model.CommentaryUpdate])
		page.Blocks = append(page.Blocks, *current)
		current = nil
	}

	body.Children().Each(func(_ int, sel *goquery.Selection) {
		if isNoise(sel) {
			return
		}

		switch goquery.NodeName(sel) {
		case "h2":
			flush()
			tier = strings.TrimSpace(sel.Text())
			page.Tiers = append(page.Tiers, tier)

		case "h3":
			flush()
			rank, name, err := parseRankHeading(sel.Text())
			if err != nil {
				log.Printf("skipping heading: %v", err)
				return
			}
			current = &PlayerBlock{Rank: rank, Name: name, Tier: tier}
			section = model.CommentaryAnalysis
			parts = map[string][]string{}

		case "h4":
			// "Playoff update", "June update", etc.
			section = model.CommentaryUpdate

		default:
			if current == nil {
				return
			}
			if sel.HasClass("bio") {
				current.Bio = parseBioLine(sel.Text())
				return
			}
			if sel.HasClass("stats") {
				current.Stats, current.Season = parseStatLine(sel.Text())
				return
			}
			if html, err := goquery.OuterHtml(sel); err == nil {
				parts[section] = append(parts[section], html)
			}
		}
	})
	flush()

	if len(page.Blocks) == 0 {
		return nil, fmt.Errorf("no player blocks found in page")
	}

	page.ListName = listNameFor(page)

	if err := checkRanks(page.Blocks); err != nil {
		return nil, err
	}

	return page, nil
}

// checkRanks enforces that ranks are unique positive integers within the
// page. The publication treats this as an editorial convention; here it is a
// hard requirement before anything is stored.
func checkRanks(blocks []PlayerBlock) error {
	seen := make(map[int32]string, len(blocks))
	for _, b := range blocks {
		if b.Rank <= 0 {
			return fmt.Errorf("rank %d for %s is not positive", b.Rank, b.Name)
		}
		if other, ok := seen[b.Rank]; ok {
			return fmt.Errorf("rank %d appears twice: %s and %s", b.Rank, other, b.Name)
		}
		seen[b.Rank] = b.Name
	}
	return nil
}

func listNameFor(page *ListPage) string {
	if strings.Contains(strings.ToLower(page.Title), "trade value") || len(page.Tiers) > 0 {
		return model.ListTradeValue
	}
	return model.ListTop100
}

func parseByline(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "By ")
	return strings.TrimSpace(s)
}

func isNoise(sel *goquery.Selection) bool {
	for _, c := range noiseClasses {
		if sel.HasClass(c) {
			return true
		}
	}
	return goquery.NodeName(sel) == "aside"
}

// Image URLs carry the CDN's responsive transform params (?w=128&q=75).
// They are presentation noise and get stripped from the stored markdown.
var imageParamsRegex = regexp.MustCompile(`(!\[[^\]]*\]\([^)?\s]+)\?[^)\s]*(\))`)

func toMarkdown(htmlParts []string) string {
	if len(htmlParts) == 0 {
		return ""
	}

	md, err := htmltomarkdown.ConvertString(strings.Join(htmlParts, "\n"))
	if err != nil {
		log.Printf("error converting commentary to markdown: %v", err)
		return ""
	}

	md = imageParamsRegex.ReplaceAllString(md, "$1$2")
	return strings.TrimSpace(md)
}
