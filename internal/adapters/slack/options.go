package slack

import "net/http"

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithAPIURL apunta el cliente a otra base (tests). Tiene que terminar en "/".
func WithAPIURL(u string) Option {
	return func(c *Client) { c.apiURL = u }
}
