package scrape

// ClubRef identifies the club a player is injured at. Both fields are
// optional: the source table sometimes carries only a crest image, sometimes
// only a link.
type ClubRef struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// PlayerRef identifies the injured player. Name is the only mandatory field;
// ID is derived from the profile URL when one exists.
type PlayerRef struct {
	ID   *string  `json:"id"`
	Name string   `json:"name"`
	URL  *string  `json:"url"`
	Club *ClubRef `json:"club,omitempty"`
}

// InjuryRecord is one parsed row of the injuries table. Since/Until are
// canonical ISO dates (YYYY-MM-DD) or nil when the source value was absent,
// a placeholder, or unparseable.
type InjuryRecord struct {
	Player PlayerRef `json:"player"`
	Injury string    `json:"injury"`
	Since  *string   `json:"since"`
	Until  *string   `json:"until"`
}

// LeagueRef carries page-level metadata about the scraped league.
type LeagueRef struct {
	Name *string `json:"name"`
	URL  string  `json:"url"`
}

// LeagueResult is the terminal output of one extraction: page metadata plus
// all rows that survived parsing, in document order. An empty Rows slice is
// a valid success value.
type LeagueResult struct {
	League    LeagueRef      `json:"league"`
	UpdatedAt string         `json:"updatedAt"`
	Rows      []InjuryRecord `json:"rows"`
}
