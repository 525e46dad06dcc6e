// Package store is the HTTP client for the remote record store that holds
// time entries (Work_Hours table) and the user directory (Employees table).
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public record-store API endpoint.
const DefaultBaseURL = "https://api.airtable.com"

// Options configures a Client. BaseID and Token are required; everything
// else has a usable default.
type Options struct {
	BaseURL        string
	BaseID         string
	WorkHoursTable string
	EmployeesTable string
	Token          string
}

// Client is an authenticated record-store API client.
type Client struct {
	baseURL        string
	baseID         string
	workHoursTable string
	employeesTable string
	httpClient     *http.Client
	log            zerolog.Logger
}

// New creates a record-store client. The bearer token is installed via a
// static oauth2 token source so every request is authenticated the same
// way regardless of endpoint.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.BaseID == "" {
		return nil, errors.New("record store: base ID is required (set store.base_id in the config file or TTRACK_STORE_BASE_ID)")
	}
	if opts.Token == "" {
		return nil, errors.New("record store: token is required (set TTRACK_STORE_TOKEN)")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.WorkHoursTable == "" {
		opts.WorkHoursTable = "Work_Hours"
	}
	if opts.EmployeesTable == "" {
		opts.EmployeesTable = "Employees"
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	httpClient := oauth2.NewClient(ctx, ts)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		baseURL:        opts.BaseURL,
		baseID:         opts.BaseID,
		workHoursTable: opts.WorkHoursTable,
		employeesTable: opts.EmployeesTable,
		httpClient:     httpClient,
		log:            log.With().Str("component", "store").Logger(),
	}, nil
}

// APIError is a non-2xx response from the record store. The message is the
// raw response body, surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// tableURL builds the endpoint for a table, e.g. /v0/<base>/<table>.
func (c *Client) tableURL(table string, query url.Values) string {
	endpoint := fmt.Sprintf("%s/v0/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(table))
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// do sends one request and decodes a JSON response into out. Non-2xx
// responses return an *APIError carrying the response body.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("method", method).Str("url", endpoint).Msg("record store request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("record store request failed: %w", err)
	}
	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().Int("status", resp.StatusCode).Msg("record store error response")
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding record store response: %w", err)
		}
	}
	return nil
}
