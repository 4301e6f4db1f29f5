//
// Package client queries the collaborators of the governance module over
// HTTP: the address registry and the voting token.
//
package client

import (
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/sethgrid/pester"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/network/httputils"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlRoleAddress = "/providers/{provider}/roles/{role}"
	UrlBalanceAt   = "/tokens/{token}/balances/{address}"
	UrlTotalSupply = "/tokens/{token}/total_supply"

	QueryHeight = "height"
)

var DefaultRetrySetting = common.RetrySetting{
	MaxRetries:  3,
	Concurrency: 1,
	Backoff:     pester.ExponentialBackoff,
}

type Client struct {
	URL     string
	Timeout time.Duration

	HTTP *common.HTTP2Client
}

func NewClient(url string, retry *common.RetrySetting) (*Client, error) {
	if retry == nil {
		r := DefaultRetrySetting
		retry = &r
	}

	httpClient, err := common.NewPersistentHTTP2Client(0, 0, true, retry)
	if err != nil {
		return nil, err
	}

	return &Client{
		URL:     strings.TrimRight(url, "/"),
		Timeout: 10 * time.Second,
		HTTP:    httpClient,
	}, nil
}

func (c *Client) Close() {
	c.HTTP.Close()
}

func expandURL(pattern string, vars ...string) string {
	url := pattern
	for i := 0; i+1 < len(vars); i += 2 {
		url = strings.Replace(url, "{"+vars[i]+"}", neturl.PathEscape(vars[i+1]), -1)
	}
	return url
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p httputils.Problem
		if err = decoder.Decode(&p); err != nil {
			p = httputils.NewStatusProblem(resp.StatusCode)
		}
		if p.Status == 0 {
			p.Status = resp.StatusCode
		}
		return p.ToError()
	}

	return decoder.Decode(response)
}

// Get requests `path` under the api prefix and decodes the json body into
// `response`.
func (c *Client) Get(ctx context.Context, path string, query neturl.Values, response interface{}) error {
	url := c.URL + UrlPrefixForAPIV1 + path
	if len(query) > 0 {
		url += "?" + query.Encode()
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	headers := http.Header{}
	headers.Set("Accept", "application/json")

	resp, err := c.HTTP.Get(ctx, url, headers)
	if err != nil {
		log.Debug("failed to request", "url", url, "error", err)
		return errors.CollaboratorError.Clone().SetData("url", url).SetData("error", err.Error())
	}

	return c.toResponse(resp, response)
}

// Post sends `body` as json to `path` under the api prefix and decodes the
// json response into `response` when it is not nil.
func (c *Client) Post(ctx context.Context, path string, body interface{}, response interface{}) error {
	url := c.URL + UrlPrefixForAPIV1 + path

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Post(ctx, url, b, headers)
	if err != nil {
		log.Debug("failed to request", "url", url, "error", err)
		return errors.CollaboratorError.Clone().SetData("url", url).SetData("error", err.Error())
	}

	if response == nil {
		var discard json.RawMessage
		response = &discard
	}

	return c.toResponse(resp, response)
}
