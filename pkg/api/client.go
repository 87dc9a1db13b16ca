// Package api is the HTTP client for the foodstore marketplace backend.
// Identity travels as a numeric user id in the X-User-Id header; error
// responses carry a {"error": "..."} envelope whose message is surfaced
// to the user verbatim. Nothing here retries: every failure is terminal
// for the attempt and requires a new user action.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketfoods/storefront/pkg/errors"
	"github.com/marketfoods/storefront/pkg/logger"
)

const (
	headerUserID    = "X-User-Id"
	headerRequestID = "X-Request-Id"
)

type Client struct {
	baseURL  string
	http     *http.Client
	identity func() int
	logg     *logger.Logger
}

// Options configures the client. Identity returns the current user id,
// zero when nobody is logged in; the header is only sent for positive ids.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Identity   func() int
	Logger     *logger.Logger
}

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("api base url required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	identity := opts.Identity
	if identity == nil {
		identity = func() int { return 0 }
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.New(logger.Options{ServiceName: "api"})
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     httpClient,
		identity: identity,
		logg:     logg,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "encoding request")
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, query, body, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "building request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)
	if id := c.identity(); id > 0 {
		req.Header.Set(headerUserID, strconv.Itoa(id))
	}

	ctx = c.logg.WithRequestID(ctx, requestID)
	c.logg.Debug(ctx, fmt.Sprintf("%s %s", method, path))

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "reading response")
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return responseError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "decoding response")
	}
	return nil
}

// responseError surfaces the server's error message when the envelope
// parses, a generic fallback otherwise.
func responseError(status int, body []byte) error {
	var envelope struct {
		Error string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		msg = strings.TrimSpace(envelope.Error)
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed (%d)", status)
	}
	return errors.New(errors.CodeFromStatus(status), msg)
}
