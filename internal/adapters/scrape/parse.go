package scrape

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// default values applied during extraction when a card omits a field
const (
	defaultDescription = "no description"
	defaultStatus      = "unknown"
	defaultLocation    = "unknown"
)

// Complaint is one parsed card from the upstream listing with defaults applied
type Complaint struct {
	// ExternalID is the upstream identifier, nil when the card had no usable anchor
	ExternalID *string `json:"external_id,omitempty"`

	Entity      string `json:"entity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	OccurredAt  string `json:"occurred_at"`
	Location    string `json:"location"`

	// Link is the canonical complaint URL, nil when no identifier was found
	Link *string `json:"link,omitempty"`

	CollectedAt time.Time `json:"collected_at"`
}

// parseListing walks the card nodes and returns structured complaints
// limit <= 0 means unbounded, used by the search fallback
func (c *Client) parseListing(doc *goquery.Document, entity string, limit int) []Complaint {
	sel := c.opts.Selectors
	collected := c.now().UTC()

	var out []Complaint
	scanned := 0
	doc.Find(sel.Card).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if limit > 0 && scanned >= limit {
			return false // stop scanning once the cap is reached
		}
		scanned++

		rec, ok := c.extractCard(card, entity, collected)
		if !ok {
			return true // discarded card, keep scanning
		}
		out = append(out, rec)
		return true
	})
	return out
}

// extractCard pulls one complaint from a card node
// the bool is false when the card is discarded for an empty title
func (c *Client) extractCard(card *goquery.Selection, entity string, collected time.Time) (Complaint, bool) {
	sel := c.opts.Selectors

	title := text(card, sel.Title)
	if title == "" {
		return Complaint{}, false
	}

	rec := Complaint{
		Entity:      entity,
		Title:       title,
		Description: textOr(card, sel.Description, defaultDescription),
		Status:      textOr(card, sel.Status, defaultStatus),
		OccurredAt:  textOr(card, sel.Date, collected.Format(time.RFC3339)),
		Location:    textOr(card, sel.Location, defaultLocation),
		CollectedAt: collected,
	}

	if href, ok := card.Find(sel.Link).First().Attr("href"); ok {
		if id := lastPathSegment(href); id != "" {
			link := c.absolutize(href)
			rec.ExternalID = &id
			rec.Link = &link
		}
	}
	return rec, true
}

// text returns the trimmed text of the first selector match
func text(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).First().Text())
}

// textOr returns the trimmed text of the first selector match or def when empty
func textOr(s *goquery.Selection, selector, def string) string {
	if v := text(s, selector); v != "" {
		return v
	}
	return def
}

// lastPathSegment returns the final path element of href without query or fragment
func lastPathSegment(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if u, err := url.Parse(href); err == nil && u.Path != "" {
		href = u.Path
	}
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndexByte(href, '/'); i >= 0 {
		href = href[i+1:]
	}
	return href
}
