package client_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHTTPClient(t *testing.T) {
	t.Parallel()

	t.Run("client properties", func(t *testing.T) {
		t.Parallel()

		httpClient := client.CreateHTTPClient(slog.New(slog.DiscardHandler))

		assert.Positive(t, httpClient.Timeout)
		assert.NotNil(t, httpClient.CheckRedirect)
		assert.Nil(t, httpClient.Jar)
	})

	t.Run("follows and logs redirects", func(t *testing.T) {
		t.Parallel()

		var logBuf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		mux := http.NewServeMux()
		mux.HandleFunc("/redirect-here", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/final-destination", http.StatusFound)
		})
		mux.HandleFunc("/final-destination", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		server := httptest.NewServer(mux)
		t.Cleanup(server.Close)

		resp, err := client.CreateHTTPClient(logger).Get(server.URL + "/redirect-here")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "/final-destination", resp.Request.URL.Path)
		assert.Contains(t, logBuf.String(), `msg="Redirected to URL"`)
		assert.Contains(t, logBuf.String(), "URL="+server.URL+"/final-destination")
	})
}
