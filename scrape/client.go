package scrape

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Client interface {
	LoadListPage(pageURL string) (*ListPage, error)
}

type client struct {
	httpClient *http.Client
}

func New() (Client, error) {
	c := &client{
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
	return c, nil
}

func (c *client) LoadListPage(pageURL string) (*ListPage, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing page url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme: %s", u.Scheme)
	}

	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	page, err := ParseListPage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error extracting list from %s: %w", pageURL, err)
	}

	return page, nil
}
