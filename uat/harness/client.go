package harness

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/Chandrasekaran86/openlib-uat/internal/logging/debug"
)

// Response is the captured result of one request: status, content
// type, and the raw body. It is the opaque handle stored in a
// ScenarioContext; once captured it is never mutated, only replaced.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Path looks a value up in the JSON body by gjson path, e.g.
// "personal_name" or "alternate_names.0".
func (r *Response) Path(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// StringList returns the body field at path as a slice of strings.
func (r *Response) StringList(path string) []string {
	var out []string
	for _, v := range r.Path(path).Array() {
		out = append(out, v.String())
	}
	return out
}

func (r *Response) String() string {
	return fmt.Sprintf("%d %s (%d bytes)", r.StatusCode, r.ContentType, len(r.Body))
}

// Client issues author lookups against an OpenLibrary-compatible
// endpoint. It is deliberately thin: no retries, no caching.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client configured from cfg.
func NewClient(cfg *Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
	}
}

// GetAuthor fetches /authors/<id>.json and captures the result.
// Transport-level failures come back as errors; any HTTP status,
// including errors, is a valid *Response.
func (c *Client) GetAuthor(ctx context.Context, id string) (*Response, error) {
	endpoint := c.baseURL + "/authors/" + id + ".json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to build request for %s", endpoint)
	}
	req.Header.Set("Accept", "application/json")

	debug.Printf("GET %s", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s failed", endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read response body from %s", endpoint)
	}

	captured := &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}
	debug.Printf("response: %s", captured)

	return captured, nil
}
