package sdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type Client struct {
	BaseURL string
	UserID  string
	HTTP    *http.Client
}

func New(baseURL, userID string) *Client {
	if baseURL == "" {
		baseURL = "https://api.civicreport.example.com"
	}
	return &Client{BaseURL: baseURL, UserID: userID, HTTP: http.DefaultClient}
}

func (c *Client) headers(req *http.Request) {
	if c.UserID != "" {
		req.Header.Set("X-User-ID", c.UserID)
	}
}

// Issues lists issues matching the given query parameters (category, status,
// city, limit, offset and friends).
func (c *Client) Issues(params map[string]string) (*http.Response, error) {
	u, _ := url.Parse(c.BaseURL + "/v1/issues")
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	req, _ := http.NewRequest("GET", u.String(), nil)
	c.headers(req)
	return c.HTTP.Do(req)
}

// SubmitIssue files a new report and returns the raw response. Submission
// limits apply per user; a 429 carries a Retry-After header.
func (c *Client) SubmitIssue(issue map[string]interface{}) (*http.Response, error) {
	b, err := json.Marshal(issue)
	if err != nil {
		return nil, err
	}
	req, _ := http.NewRequest("POST", c.BaseURL+"/v1/issues", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	c.headers(req)
	return c.HTTP.Do(req)
}

// PreviewInsights scores a draft issue without storing it, for use in
// reporting forms.
func (c *Client) PreviewInsights(draft map[string]interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	req, _ := http.NewRequest("POST", c.BaseURL+"/v1/insights/preview", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	c.headers(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("preview insights: unexpected status %d", resp.StatusCode)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyticsSummary returns the corpus-wide issue summary.
func (c *Client) AnalyticsSummary() (map[string]interface{}, error) {
	req, _ := http.NewRequest("GET", c.BaseURL+"/v1/analytics/summary", nil)
	c.headers(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics summary: unexpected status %d", resp.StatusCode)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
