package backend

import (
	"net/http"
	"time"
)

// HTTPDoer - всё, что нужно клиенту от *http.Client; подменяется в тестах.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(httpClient HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout - таймаут одного запроса, по умолчанию 20 секунд.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAuthScheme - префикс заголовка Authorization ("Token" или "Bearer").
func WithAuthScheme(scheme string) Option {
	return func(c *Client) {
		if scheme != "" {
			c.scheme = scheme
		}
	}
}
