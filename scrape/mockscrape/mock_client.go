package mockscrape

import (
	"github.com/hooprank/hooprank/scrape"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) LoadListPage(pageURL string) (*scrape.ListPage, error) {
	args := c.Called(pageURL)

	var p *scrape.ListPage
	if args.Get(0) != nil {
		p = args.Get(0).(*scrape.ListPage)
	}

	return p, args.Error(1)
}
