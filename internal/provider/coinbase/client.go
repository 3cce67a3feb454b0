package coinbase

import (
	"net/http"

	"go.uber.org/zap"
)

// DefaultEndpoint is the spot price endpoint; "{}" is replaced by the base code.
const DefaultEndpoint = "https://api.coinbase.com/v2/prices/{}-USD/spot"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=coinbase_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Coinbase spot price API.
type Client struct {
	// endpoint is the URL template, with "{}" standing in for the symbol code.
	endpoint string
	// httpClient is the HTTP client. It is shared by every request.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	log    *zap.Logger
}

// ClientOption is a configuration option for the Coinbase client.
type ClientOption func(*Client)

// WithEndpoint sets the endpoint template.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithLogger sets the logger used for diagnostics about upstream payloads.
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a new Coinbase client.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
		header: http.Header{
			"Content-Type": []string{"application/json"},
			"Accept":       []string{"application/json"},
		},
		log: zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}
