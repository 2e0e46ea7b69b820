package dataforseo

// Wire types for the DataForSEO v3 API. Only the fields the toolkit
// reads are mapped; the raw body is preserved separately where callers
// need it.

const statusOK = 20000

type apiResponse struct {
	StatusCode    int       `json:"status_code"`
	StatusMessage string    `json:"status_message"`
	Tasks         []apiTask `json:"tasks"`
}

type apiTask struct {
	StatusCode    int         `json:"status_code"`
	StatusMessage string      `json:"status_message"`
	Result        []apiResult `json:"result"`
}

type apiResult struct {
	Keyword  string    `json:"keyword"`
	CheckURL string    `json:"check_url"`
	Items    []apiItem `json:"items"`
}

type apiItem struct {
	Type         string     `json:"type"`
	RankGroup    int        `json:"rank_group"`
	RankAbsolute int        `json:"rank_absolute"`
	Title        string     `json:"title"`
	URL          string     `json:"url"`
	Domain       string     `json:"domain"`
	Description  string     `json:"description"`
	Phone        string     `json:"phone"`
	Source       string     `json:"source"`
	Date         string     `json:"date"`
	Timestamp    string     `json:"timestamp"`
	Rating       *apiRating `json:"rating,omitempty"`
	Items        []apiItem  `json:"items"`
}

type apiRating struct {
	Value float64 `json:"value"`
}

type taskPayload struct {
	Keyword      string `json:"keyword"`
	LanguageCode string `json:"language_code"`
	LocationCode int    `json:"location_code"`
	Device       string `json:"device"`
	Depth        int    `json:"depth,omitempty"`
}

type locationsResponse struct {
	StatusCode    int            `json:"status_code"`
	StatusMessage string         `json:"status_message"`
	Tasks         []locationTask `json:"tasks"`
}

type locationTask struct {
	StatusCode    int           `json:"status_code"`
	StatusMessage string        `json:"status_message"`
	Result        []apiLocation `json:"result"`
}

type apiLocation struct {
	LocationCode       int    `json:"location_code"`
	LocationName       string `json:"location_name"`
	LocationCodeParent int    `json:"location_code_parent"`
	CountryISOCode     string `json:"country_iso_code"`
	LocationType       string `json:"location_type"`
}
