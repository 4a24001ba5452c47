// Package scrape fetches complaint listings from the upstream portal and
// parses the rendered markup into typed records
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gripewatch/internal/core/slug"
	"gripewatch/internal/platform/config"
	perr "gripewatch/internal/platform/errors"
	"gripewatch/internal/platform/logger"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultListPath   = "/empresa/%s/lista-reclamacoes/"
	defaultSearchPath = "/busca/?q=%s"
	defaultTimeout    = 10 * time.Second
	defaultMaxCards   = 20

	// the upstream serves an empty shell to clients it does not recognize as browsers
	defaultUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Options configures the Client
type Options struct {
	// BaseURL is the upstream origin, required
	BaseURL string

	// ListPath is a printf template with one %s for the entity slug
	ListPath string

	// SearchPath is a printf template with one %s for the url escaped query
	SearchPath string

	UserAgent string
	Timeout   time.Duration

	// MaxCards caps how many cards a direct listing fetch scans
	MaxCards int

	Selectors Selectors
}

// FromConfig builds Options from a prefixed conf, eg SCRAPE_*
func FromConfig(cfg config.Conf) Options {
	return Options{
		BaseURL:    cfg.MustString("BASE_URL"),
		ListPath:   cfg.MayString("LIST_PATH", defaultListPath),
		SearchPath: cfg.MayString("SEARCH_PATH", defaultSearchPath),
		UserAgent:  cfg.MayString("USER_AGENT", defaultUA),
		Timeout:    cfg.MayDuration("TIMEOUT", defaultTimeout),
		MaxCards:   cfg.MayInt("MAX_CARDS", defaultMaxCards),
		Selectors:  SelectorsFromConfig(cfg),
	}
}

// Client fetches listing pages and extracts complaint cards
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.ListPath == "" {
		o.ListPath = defaultListPath
	}
	if o.SearchPath == "" {
		o.SearchPath = defaultSearchPath
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxCards <= 0 {
		o.MaxCards = defaultMaxCards
	}
	if o.Selectors == (Selectors{}) {
		o.Selectors = DefaultSelectors()
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("scrape"),
		now:  time.Now,
	}
}

// Fetch pulls the direct listing page for entity and returns up to MaxCards records
// a page with zero matching cards is an empty result, not an error
func (c *Client) Fetch(ctx context.Context, entity string) ([]Complaint, error) {
	s := slug.Normalize(entity)
	if s == "" {
		return nil, perr.InvalidArgf("entity name produced an empty slug")
	}

	target := strings.TrimRight(c.opts.BaseURL, "/") + fmt.Sprintf(c.opts.ListPath, s)
	doc, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}
	return c.parseListing(doc, entity, c.opts.MaxCards), nil
}

// FetchViaSearch searches by the human readable name, follows the first entity
// link in the results, and runs the same card extraction without the card cap
func (c *Client) FetchViaSearch(ctx context.Context, entity string) ([]Complaint, error) {
	q := strings.TrimSpace(entity)
	if q == "" {
		return nil, perr.InvalidArgf("entity name is empty")
	}

	target := strings.TrimRight(c.opts.BaseURL, "/") + fmt.Sprintf(c.opts.SearchPath, url.QueryEscape(q))
	doc, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}

	href, ok := doc.Find(c.opts.Selectors.SearchResult).First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return nil, perr.NotFoundf("no search results for %q", entity)
	}

	doc, err = c.get(ctx, c.absolutize(href))
	if err != nil {
		return nil, err
	}
	return c.parseListing(doc, entity, 0), nil
}

// get issues one GET with the browser identity and maps failure statuses onto
// the fetch error taxonomy
func (c *Client) get(ctx context.Context, target string) (*goquery.Document, error) {
	if c.opts.BaseURL == "" {
		return nil, perr.InvalidArgf("scrape base url is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "scrape new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)

	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNetwork, "upstream did not respond")
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("url", target).Msg("scrape close body failed")
		}
	}()

	c.log.Debug().
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("scrape http response")

	switch resp.StatusCode {
	case http.StatusOK:
		doc, qerr := goquery.NewDocumentFromReader(resp.Body)
		if qerr != nil {
			return nil, perr.Wrapf(qerr, perr.ErrorCodeUnknown, "scrape document parse failed")
		}
		return doc, nil
	case http.StatusNotFound:
		return nil, perr.NotFoundf("entity page not found")
	case http.StatusForbidden:
		return nil, perr.Blockedf("upstream denied access")
	default:
		// read a small tail for diagnostics then return
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, perr.Newf(perr.ErrorCodeUnknown, "unexpected status %d body %s", resp.StatusCode, string(body))
	}
}

// absolutize resolves a relative href against the configured origin
func (c *Client) absolutize(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimRight(c.opts.BaseURL, "/") + "/" + strings.TrimLeft(href, "/")
}
