// Package garmin fetches activity metadata and track files from a
// Garmin Connect compatible API.
package garmin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrAuthentication means the service rejected the credentials.
	ErrAuthentication = errors.New("authentication rejected")
	// ErrNotFound means the requested activity does not exist.
	ErrNotFound = errors.New("activity not found")
)

// DefaultBaseURL points at the Connect API proxy. Override via
// GARMIN_BASE_URL for self-hosted wrappers.
const DefaultBaseURL = "https://connect.garmin.com"

const startTimeLayout = "2006-01-02 15:04:05"

// Activity is the metadata record the activity listing returns.
type Activity struct {
	ActivityID     int64        `json:"activityId"`
	ActivityName   string       `json:"activityName"`
	StartTimeLocal string       `json:"startTimeLocal"`
	ActivityType   ActivityType `json:"activityType"`
	Distance       float64      `json:"distance"` // meters
	Duration       float64      `json:"duration"` // seconds
}

type ActivityType struct {
	TypeKey    string `json:"typeKey"`
	SubTypeKey string `json:"subTypeKey,omitempty"`
}

// StartTime parses the local start timestamp. The zero time is returned
// for records with a missing or malformed timestamp.
func (a Activity) StartTime() time.Time {
	t, err := time.Parse(startTimeLayout, a.StartTimeLocal)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Client is an authenticated session against the activity service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Login exchanges credentials for a session token. All later calls use
// the token; Login must be called once per Client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := strings.NewReader(url.Values{
		"username": {email},
		"password": {password},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthentication
	default:
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login: API returned status %d: %s", resp.StatusCode, msg)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("login response: %w", err)
	}
	if out.Token == "" {
		return ErrAuthentication
	}
	c.token = out.Token
	return nil
}

// ListActivities fetches up to limit activity records, newest first,
// constrained server-side by the criteria where the API supports it.
func (c *Client) ListActivities(ctx context.Context, limit int, crit Criteria) ([]Activity, error) {
	params := crit.queryParams()
	params.Set("start", "0")
	params.Set("limit", fmt.Sprint(limit))

	var activities []Activity
	if err := c.getJSON(ctx, "/api/activities?"+params.Encode(), &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// DownloadGPX fetches the GPX export of one activity.
func (c *Client) DownloadGPX(ctx context.Context, activityID int64) ([]byte, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/api/activities/%d/gpx", activityID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		resp.Body.Close()
		return nil, ErrAuthentication
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	default:
		msg, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, msg)
	}
}
