package dataforseo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/ports"
)

const (
	defaultBaseURL = "https://api.dataforseo.com"
	serpPath       = "/v3/serp/google/organic/live/advanced"
	locationsPath  = "/v3/serp/google/locations"

	// Live Advanced calls can take minutes under provider load.
	defaultTimeout = 5 * time.Minute

	defaultDevice = "desktop"
)

// Client talks to the DataForSEO v3 API. It is stateless apart from
// the shared rate limiter and safe for concurrent use. It never
// retries; retry and failure-isolation policy belongs to the caller.
type Client struct {
	BaseURL    string
	httpClient *http.Client
	creds      domain.Credentials
	limiter    *rate.Limiter
}

// NewClient builds a client. limiter may be nil when the provider
// quota is not being shared across concurrent traversals. httpClient
// may be nil; a client with the provider-appropriate timeout is used.
func NewClient(creds domain.Credentials, limiter *rate.Limiter, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		BaseURL:    defaultBaseURL,
		httpClient: httpClient,
		creds:      creds,
		limiter:    limiter,
	}
}

// FetchQuestions implements ports.QuestionSource: one Live Advanced
// call for one keyword, returning People Also Ask titles in response
// order.
func (c *Client) FetchQuestions(ctx context.Context, keyword string, locale domain.Locale) ([]string, error) {
	payload := []taskPayload{{
		Keyword:      keyword,
		LanguageCode: locale.LanguageCode,
		LocationCode: locale.LocationCode,
		Device:       defaultDevice,
	}}

	decoded, _, err := c.postSERP(ctx, payload)
	if err != nil {
		return nil, err
	}

	var questions []string
	for _, task := range decoded.Tasks {
		for _, result := range task.Result {
			for _, item := range result.Items {
				if item.Type != "people_also_ask" {
					continue
				}
				for _, paa := range item.Items {
					if paa.Type == "people_also_ask_element" && paa.Title != "" {
						questions = append(questions, paa.Title)
					}
				}
			}
		}
	}
	return questions, nil
}

// FetchSERP implements ports.SERPSource: the full result page for one
// keyword, raw body included.
func (c *Client) FetchSERP(ctx context.Context, req domain.SERPRequest) (domain.SERPPage, error) {
	device := req.Device
	if device == "" {
		device = defaultDevice
	}
	payload := []taskPayload{{
		Keyword:      req.Keyword,
		LanguageCode: req.Locale.LanguageCode,
		LocationCode: req.Locale.LocationCode,
		Device:       device,
		Depth:        req.Depth,
	}}

	decoded, raw, err := c.postSERP(ctx, payload)
	if err != nil {
		return domain.SERPPage{}, err
	}

	page := domain.SERPPage{
		Keyword:   req.Keyword,
		RawJSON:   raw,
		FetchedAt: time.Now(),
	}
	for _, task := range decoded.Tasks {
		for _, result := range task.Result {
			if page.CheckURL == "" {
				page.CheckURL = result.CheckURL
			}
			for _, item := range result.Items {
				switch item.Type {
				case "organic":
					page.Organic = append(page.Organic, domain.OrganicResult{
						RankGroup:    item.RankGroup,
						RankAbsolute: item.RankAbsolute,
						Title:        item.Title,
						URL:          item.URL,
						Domain:       item.Domain,
						Description:  item.Description,
					})
				case "local_pack":
					entry := domain.LocalPackEntry{
						RankGroup:    item.RankGroup,
						RankAbsolute: item.RankAbsolute,
						Title:        item.Title,
						Domain:       item.Domain,
						Phone:        item.Phone,
					}
					if item.Rating != nil {
						entry.Rating = item.Rating.Value
					}
					page.LocalPack = append(page.LocalPack, entry)
				case "top_stories":
					for rank, story := range item.Items {
						page.TopStories = append(page.TopStories, domain.TopStory{
							RankGroup: rank + 1,
							Title:     story.Title,
							URL:       story.URL,
							Source:    story.Source,
							Date:      story.Date,
							Timestamp: story.Timestamp,
						})
					}
				}
			}
		}
	}
	return page, nil
}

// FetchLocations implements ports.LocationCatalog.
func (c *Client) FetchLocations(ctx context.Context) ([]domain.Location, error) {
	body, err := c.do(ctx, http.MethodGet, locationsPath, nil)
	if err != nil {
		return nil, err
	}

	var decoded locationsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &ProviderError{Message: "invalid JSON response: " + err.Error()}
	}
	if decoded.StatusCode != statusOK {
		return nil, &ApplicationError{StatusCode: decoded.StatusCode, StatusMessage: decoded.StatusMessage}
	}

	var locations []domain.Location
	for _, task := range decoded.Tasks {
		if task.StatusCode != statusOK {
			return nil, &ApplicationError{StatusCode: task.StatusCode, StatusMessage: task.StatusMessage}
		}
		for _, loc := range task.Result {
			locations = append(locations, domain.Location{
				Code:       loc.LocationCode,
				Name:       loc.LocationName,
				CodeParent: loc.LocationCodeParent,
				CountryISO: loc.CountryISOCode,
				Type:       loc.LocationType,
			})
		}
	}
	return locations, nil
}

func (c *Client) postSERP(ctx context.Context, payload []taskPayload) (apiResponse, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return apiResponse{}, nil, err
	}

	raw, err := c.do(ctx, http.MethodPost, serpPath, body)
	if err != nil {
		return apiResponse{}, nil, err
	}

	var decoded apiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return apiResponse{}, nil, &ProviderError{Message: "invalid JSON response: " + err.Error()}
	}
	if decoded.StatusCode != statusOK {
		return apiResponse{}, nil, &ApplicationError{StatusCode: decoded.StatusCode, StatusMessage: decoded.StatusMessage}
	}
	for _, task := range decoded.Tasks {
		if task.StatusCode != statusOK {
			return apiResponse{}, nil, &ApplicationError{StatusCode: task.StatusCode, StatusMessage: task.StatusMessage}
		}
	}
	return decoded, raw, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.creds.APILogin, c.creds.APIPassword)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: truncate(string(raw), 200)}
	}
	return raw, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var (
	_ ports.QuestionSource  = (*Client)(nil)
	_ ports.SERPSource      = (*Client)(nil)
	_ ports.LocationCatalog = (*Client)(nil)
)
