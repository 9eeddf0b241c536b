package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Status is the text shown in the form's status indicator.
type Status string

const (
	StatusSending      Status = "Sending..."
	StatusSent         Status = "Thanks! Message sent."
	StatusOpeningEmail Status = "Opening email client..."
)

// ResponseError reports a non-2xx answer from the intake endpoint.
type ResponseError struct {
	Code int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("API responded %d", e.Code)
}

// Outcome is the result of one submission. When Sent is false the fallback
// fired and Mailto holds the URI that was opened.
type Outcome struct {
	Sent   bool
	Mailto string
	Err    error
}

// Submitter posts a submission to the intake endpoint and falls back to a
// mailto link on any failure.
type Submitter struct {
	Endpoint string
	// EmailLink is the page's email link href, e.g. "mailto:me@example.com".
	EmailLink string
	Client    *http.Client
	OnStatus  func(Status)
	Navigate  func(uri string) error
}

func (s *Submitter) Submit(ctx context.Context, sub Submission) Outcome {
	sub = sub.Trimmed()

	s.report(StatusSending)

	err := s.post(ctx, sub)
	if err == nil {
		s.report(StatusSent)

		return Outcome{Sent: true}
	}

	uri := MailtoURI(FallbackAddress(s.EmailLink), sub)

	if s.Navigate != nil {
		if navErr := s.Navigate(uri); navErr != nil {
			err = errors.Join(err, navErr)
		}
	}

	s.report(StatusOpeningEmail)

	return Outcome{Mailto: uri, Err: err}
}

func (s *Submitter) post(ctx context.Context, sub Submission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ResponseError{Code: resp.StatusCode}
	}

	return nil
}

func (s *Submitter) report(status Status) {
	if s.OnStatus != nil {
		s.OnStatus(status)
	}
}
