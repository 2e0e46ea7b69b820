package domain

import "time"

// SERPRequest asks the provider for one result page.
type SERPRequest struct {
	Keyword string
	Locale  Locale
	// Depth is the number of results the provider should return
	// (provider default 10, up to 100). Unrelated to PAA depth.
	Depth  int
	Device string
}

// SERPPage carries the provider payload for one keyword, both raw and
// with the typed blocks the toolkit extracts.
type SERPPage struct {
	Keyword    string
	CheckURL   string
	RawJSON    []byte
	Organic    []OrganicResult
	LocalPack  []LocalPackEntry
	TopStories []TopStory
	FetchedAt  time.Time
}

// OrganicResult is one standard listing on the page.
type OrganicResult struct {
	RankGroup    int
	RankAbsolute int
	Title        string
	URL          string
	Domain       string
	Description  string
}

// LocalPackEntry is one row of the local 3-pack block.
type LocalPackEntry struct {
	RankGroup    int
	RankAbsolute int
	Title        string
	Domain       string
	Phone        string
	Rating       float64
}

// TopStory is one entry of the top_stories block.
type TopStory struct {
	RankGroup int
	Title     string
	URL       string
	Source    string
	Date      string
	Timestamp string
}
