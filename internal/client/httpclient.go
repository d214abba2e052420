package client

import (
	"log/slog"
	"net/http"
	"time"
)

const (
	// UserAgent identifies requests made by the hestia tooling.
	UserAgent = "hestia-client/1.0"

	defaultTimeout = 15 * time.Second
)

// CreateHTTPClient initializes an HTTP client that follows and logs redirects.
func CreateHTTPClient(log *slog.Logger) *http.Client {
	return &http.Client{
		Timeout: defaultTimeout,
		CheckRedirect: func(req *http.Request, _ []*http.Request) error {
			log.Debug("Redirected to URL", "URL", req.URL)

			return nil
		},
	}
}
