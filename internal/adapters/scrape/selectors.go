package scrape

import "gripewatch/internal/platform/config"

// Selectors is the CSS selector set for the upstream listing markup
// it lives in config so a layout change is an env rollout, not a code change
type Selectors struct {
	Card        string
	Title       string
	Description string
	Status      string
	Date        string
	Location    string
	Link        string

	// SearchResult anchors the first matching entity page on the search fallback
	SearchResult string
}

// DefaultSelectors returns the selector set the upstream currently serves
func DefaultSelectors() Selectors {
	return Selectors{
		Card:         "div.complaint-item",
		Title:        ".complaint-title",
		Description:  ".complaint-description",
		Status:       ".complaint-status",
		Date:         ".complaint-date",
		Location:     ".complaint-location",
		Link:         "a.complaint-link",
		SearchResult: "a.company-link",
	}
}

// SelectorsFromConfig overlays env overrides on the defaults
// keys are relative to the conf prefix, eg SCRAPE_SEL_CARD
func SelectorsFromConfig(cfg config.Conf) Selectors {
	d := DefaultSelectors()
	return Selectors{
		Card:         cfg.MayString("SEL_CARD", d.Card),
		Title:        cfg.MayString("SEL_TITLE", d.Title),
		Description:  cfg.MayString("SEL_DESCRIPTION", d.Description),
		Status:       cfg.MayString("SEL_STATUS", d.Status),
		Date:         cfg.MayString("SEL_DATE", d.Date),
		Location:     cfg.MayString("SEL_LOCATION", d.Location),
		Link:         cfg.MayString("SEL_LINK", d.Link),
		SearchResult: cfg.MayString("SEL_SEARCH_RESULT", d.SearchResult),
	}
}
