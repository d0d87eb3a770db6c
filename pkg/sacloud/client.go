// Package sacloud is a minimal client for the provider's zone-scoped REST
// API. It models only the resource kinds the provisioning workflows actually
// use; it is not a general SDK.
package sacloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURLFormat = "https://secure.sakura.ad.jp/cloud/zone/%s/api/cloud/1.1/"

// Credentials carries the zone and API token pair. It is constructed once at
// startup (typically from the local config file) and handed to NewClient;
// nothing in this package reads the environment.
type Credentials struct {
	Zone        string
	AccessToken string
	SecretToken string

	// BaseURL overrides the derived endpoint; used by tests.
	BaseURL string
}

// Client talks to one zone of the provider API over HTTP Basic auth.
type Client struct {
	baseURL *url.URL
	token   string
	secret  string
	httpc   *http.Client

	statusPollInterval time.Duration
	deletePollInterval time.Duration
	waitTimeout        time.Duration
}

// ClientOption adjusts a Client at construction time.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpc = hc }
}

// WithPollInterval sets the status-wait and delete-wait poll intervals.
func WithPollInterval(status, del time.Duration) ClientOption {
	return func(c *Client) {
		c.statusPollInterval = status
		c.deletePollInterval = del
	}
}

// WithWaitTimeout bounds every wait loop (status and delete).
func WithWaitTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.waitTimeout = d }
}

// NewClient builds a client for the zone named in creds.
func NewClient(creds Credentials, opts ...ClientOption) (*Client, error) {
	raw := creds.BaseURL
	if raw == "" {
		if creds.Zone == "" {
			return nil, fmt.Errorf("zone must be set")
		}
		raw = fmt.Sprintf(defaultBaseURLFormat, creds.Zone)
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if creds.AccessToken == "" || creds.SecretToken == "" {
		return nil, fmt.Errorf("access token and secret token must be set")
	}

	c := &Client{
		baseURL: base,
		token:   creds.AccessToken,
		secret:  creds.SecretToken,
		httpc:   &http.Client{Timeout: 60 * time.Second},

		statusPollInterval: 2 * time.Second,
		deletePollInterval: 5 * time.Second,
		waitTimeout:        30 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request performs one HTTP call. query, when non-nil, is marshalled to a
// single JSON object and sent as the raw query string - the provider parses
// the query string as JSON rather than as form pairs. The decoded response
// body is returned for any of the accepted success codes (200/201/202/204);
// every other status maps to a StatusError.
func (c *Client) request(ctx context.Context, method, path string, query, body any) (json.RawMessage, error) {
	u := *c.baseURL
	u.Path += path
	if query != nil {
		q, err := json.Marshal(query)
		if err != nil {
			return nil, &RequestError{Path: path, Err: fmt.Errorf("marshal query: %w", err)}
		}
		u.RawQuery = url.QueryEscape(string(q))
	}

	var bodyReader io.Reader
	var rawBody []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &RequestError{Path: path, Err: fmt.Errorf("marshal request body: %w", err)}
		}
		rawBody = b
		bodyReader = bytes.NewReader(b)
	}

	log.Trace().Str("method", method).Str("path", path).Msg("api request")

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, &RequestError{Path: path, Err: err}
	}
	req.SetBasicAuth(c.token, c.secret)
	req.Header.Set("Accept", "application/json")
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, &RequestError{Path: path, Err: err}
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
	default:
		log.Trace().Str("path", path).Int("status", res.StatusCode).Msg("api request failed")
		return nil, &StatusError{
			Kind:       statusKind(res.StatusCode),
			StatusCode: res.StatusCode,
			Path:       path,
			Body:       rawBody,
		}
	}

	if res.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &RequestError{Path: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("body is not valid json")}
	}
	return json.RawMessage(data), nil
}

// statusKind is the closed mapping from HTTP status codes to semantic error
// kinds. Codes outside the mapping are never treated as success.
func statusKind(code int) StatusErrorKind {
	switch code {
	case http.StatusBadRequest:
		return StatusBadRequest
	case http.StatusUnauthorized:
		return StatusUnauthorized
	case http.StatusForbidden:
		return StatusForbidden
	case http.StatusNotFound:
		return StatusNotFound
	case http.StatusMethodNotAllowed:
		return StatusMethodNotAllowed
	case http.StatusNotAcceptable:
		return StatusNotAcceptable
	case http.StatusRequestTimeout:
		return StatusRequestTimeout
	case http.StatusConflict:
		return StatusConflict
	case http.StatusLengthRequired:
		return StatusLengthRequired
	case http.StatusRequestEntityTooLarge:
		return StatusPayloadTooLarge
	case http.StatusUnsupportedMediaType:
		return StatusUnsupportedMediaType
	case http.StatusInternalServerError:
		return StatusInternalServerError
	case http.StatusServiceUnavailable:
		return StatusServiceUnavailable
	default:
		return StatusUnknown
	}
}

// requestResource wraps request with the provider's envelope conventions:
// the response may carry an "is_ok" boolean or a "Success" field that is
// either a boolean or the literal string "Accepted", and both must indicate
// success when present. When singleKey is non-empty the resource object under
// that key is extracted and returned.
func (c *Client) requestResource(ctx context.Context, method, path, singleKey string, body any) (json.RawMessage, error) {
	raw, err := c.request(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		if singleKey != "" {
			return nil, &InvalidResourceError{Path: path, Key: singleKey}
		}
		return nil, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	if v, ok := envelope["is_ok"]; ok {
		var isOK bool
		if err := json.Unmarshal(v, &isOK); err != nil {
			return nil, &InvalidStatusError{Path: path, Field: "is_ok", Value: v, Envelope: raw}
		}
		if !isOK {
			return nil, &InvalidStatusError{Path: path, Field: "is_ok", Value: v, Envelope: raw}
		}
	}
	if v, ok := envelope["Success"]; ok {
		var asBool bool
		var asString string
		switch {
		case json.Unmarshal(v, &asBool) == nil:
			if !asBool {
				return nil, &InvalidStatusError{Path: path, Field: "Success", Value: v, Envelope: raw}
			}
		case json.Unmarshal(v, &asString) == nil:
			if asString != "Accepted" {
				return nil, &InvalidStatusError{Path: path, Field: "Success", Value: v, Envelope: raw}
			}
		default:
			return nil, &InvalidStatusError{Path: path, Field: "Success", Value: v, Envelope: raw}
		}
	}

	if singleKey == "" {
		return raw, nil
	}
	res, ok := envelope[singleKey]
	if !ok {
		return nil, &InvalidResourceError{Path: path, Key: singleKey}
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(res, &probe); err != nil {
		return nil, &InvalidResourceError{Path: path, Key: singleKey}
	}
	return res, nil
}

// Fetch retrieves one resource by id.
func (c *Client) Fetch(ctx context.Context, kind ResourceKind, id ID) (json.RawMessage, error) {
	path := fmt.Sprintf("%s/%s", kind.Path(), id)
	return c.requestResource(ctx, http.MethodGet, path, kind.SingleName(), nil)
}

// Create issues a POST with the payload wrapped under the kind's singular key
// and returns the created resource object.
func (c *Client) Create(ctx context.Context, kind ResourceKind, payload any) (json.RawMessage, error) {
	body := map[string]any{kind.SingleName(): payload}
	return c.requestResource(ctx, http.MethodPost, kind.Path(), kind.SingleName(), body)
}

// Update issues a PUT against path. body may be nil.
func (c *Client) Update(ctx context.Context, path string, body any) error {
	_, err := c.requestResource(ctx, http.MethodPut, path, "", body)
	return err
}

// Delete removes a resource. body may be nil.
func (c *Client) Delete(ctx context.Context, kind ResourceKind, id ID, body any) error {
	path := fmt.Sprintf("%s/%s", kind.Path(), id)
	_, err := c.requestResource(ctx, http.MethodDelete, path, "", body)
	return err
}

// PowerOn turns the resource's instance on (POST .../power).
func (c *Client) PowerOn(ctx context.Context, kind ResourceKind, id ID) error {
	path := fmt.Sprintf("%s/%s/power", kind.Path(), id)
	_, err := c.requestResource(ctx, http.MethodPost, path, "", nil)
	return err
}

// PowerOff turns the resource's instance off (DELETE .../power).
func (c *Client) PowerOff(ctx context.Context, kind ResourceKind, id ID) error {
	path := fmt.Sprintf("%s/%s/power", kind.Path(), id)
	_, err := c.requestResource(ctx, http.MethodDelete, path, "", nil)
	return err
}
