// Package scoring forwards job descriptions to the external AI webhook.
// The webhook's behavior is out of scope here; this client only delivers
// the payload and reports whether delivery succeeded.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shortlist-dev/shortlister/internal/apperr"
	"github.com/shortlist-dev/shortlister/internal/domain"
)

type Client struct {
	url    string
	client *http.Client
}

func New(url string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a webhook URL is configured. Forwarding is
// optional; an unset URL turns the client into a no-op.
func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

type payload struct {
	JdId           domain.JdId    `json:"jd_id"`
	UserId         domain.UserId  `json:"user_id"`
	JobTitle       string         `json:"job_title"`
	JobDescription string         `json:"job_description"`
	Skills         map[string]int `json:"skills"`
}

// Forward posts the job description to the webhook. Timeouts surface as a
// retryable infrastructure error rather than hanging the caller.
func (c *Client) Forward(ctx context.Context, jd domain.JobDescription) error {
	body, err := json.Marshal(payload{
		JdId:           jd.Id,
		UserId:         jd.UserId,
		JobTitle:       jd.Title,
		JobDescription: jd.Description,
		Skills:         jd.Skills,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal scoring payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build scoring request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return apperr.New(apperr.Infrastructure, "Scoring webhook timed out, retry later")
		}
		return fmt.Errorf("failed to reach scoring webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("scoring webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
