// Package gqlclient is a minimal GraphQL-over-HTTP client used only for
// the schema-fetch introspection request: a plain JSON POST, since
// introspection never uploads files.
package gqlclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

type Client struct {
	client   *http.Client
	header   http.Header
	endpoint string
}

func NewClient(endpoint string, options ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		client:   http.DefaultClient,
		header:   http.Header{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.client = httpClient }
}

func WithHTTPHeader(header http.Header) Option {
	return func(c *Client) { c.header = header }
}

type requestBody struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type responseEnvelope struct {
	Data   jsontext.Value  `json:"data"`
	Errors []gqlError      `json:"errors,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

// Post sends a GraphQL query as a single JSON POST and decodes the `data`
// field into out. A non-empty `errors` field is a fatal schema-fetch
// failure.
func (c *Client) Post(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(requestBody{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graphql endpoint returned status %d", resp.StatusCode)
	}

	var envelope responseEnvelope
	if err := json.UnmarshalRead(resp.Body, &envelope); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("graphql endpoint returned errors: %s", joinErrors(envelope.Errors))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}

func joinErrors(errs []gqlError) string {
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += e.Message
	}
	return msg
}
