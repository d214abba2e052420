package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/parser"
)

var (
	ErrSubmit  = errors.New("employee submission failed")
	ErrListing = errors.New("failed to fetch employee listing")
)

// RejectedError is returned when the server answered a submission with the form page again.
type RejectedError struct {
	StatusCode int
	Messages   []string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s, status code: %d: %s", ErrSubmit, e.StatusCode, strings.Join(e.Messages, "; "))
}

func (e *RejectedError) Unwrap() error {
	return ErrSubmit
}

// SubmitEmployee posts sub to the new-employee form at formURL. It succeeds when the server answers
// with a redirect to the listing carrying the success flag; the redirect itself is not followed, so a
// failing listing page cannot make a stored employee look rejected.
func SubmitEmployee(ctx context.Context, client *http.Client, formURL string, sub models.Submission) error {
	data := url.Values{}
	data.Set("name", sub.Name)
	data.Set("email", sub.Email)
	data.Set("phone", sub.Phone)
	data.Set("address", sub.Address)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, formURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create new request %s: %w", formURL, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Referer", formURL)

	noFollow := *client
	noFollow.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := noFollow.Do(req)
	if err != nil {
		return fmt.Errorf("failed to request %s: %w", formURL, err)
	}
	defer resp.Body.Close()

	if isSuccessRedirect(resp) {
		return nil
	}

	page, err := parser.ParseForm(resp.Body)
	if err != nil {
		return fmt.Errorf("%w, status code: %d: %w", ErrSubmit, resp.StatusCode, err)
	}

	return &RejectedError{StatusCode: resp.StatusCode, Messages: page.Errors}
}

func isSuccessRedirect(resp *http.Response) bool {
	if resp.StatusCode < http.StatusMultipleChoices || resp.StatusCode >= http.StatusBadRequest {
		return false
	}

	location, err := resp.Location()
	if err != nil {
		return false
	}

	return location.Query().Get("success") == "1"
}

// RetrySubmit retries SubmitEmployee while the failure is not a rejection of the submitted values.
func RetrySubmit(
	ctx context.Context,
	log *slog.Logger,
	httpClient *http.Client,
	formURL string,
	sub models.Submission,
	retries int,
	delay time.Duration,
) error {
	var err error

	for index := range retries {
		err = SubmitEmployee(ctx, httpClient, formURL, sub)
		if err == nil {
			return nil
		}

		var rejected *RejectedError
		if errors.As(err, &rejected) && rejected.StatusCode < http.StatusInternalServerError {
			return err
		}

		log.WarnContext(ctx, "Failed to submit employee, retrying...", "attempt", index+1, "of", retries, "error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("failed to submit employee after %d attempts: %w", retries, err)
}

// FetchListing downloads and parses the employee listing page at listURL.
func FetchListing(ctx context.Context, client *http.Client, listURL string) (parser.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return parser.Listing{}, fmt.Errorf("failed to create new request %s: %w", listURL, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return parser.Listing{}, fmt.Errorf("failed to request %s: %w", listURL, err)
	}
	defer resp.Body.Close()

	listing, err := parser.ParseListing(resp.Body)
	if err != nil {
		return parser.Listing{}, fmt.Errorf("%w: %w", ErrListing, err)
	}

	if resp.StatusCode != http.StatusOK {
		return listing, fmt.Errorf("%w, status code: %d: %s", ErrListing, resp.StatusCode, listing.ErrorMessage)
	}

	return listing, nil
}
