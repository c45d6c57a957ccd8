// Package mail provides the outbound transactional email client
// it speaks a small REST dialect: one POST per message with an API key header
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"inkwell/internal/core/subscriber"
	perr "inkwell/internal/platform/errors"
	"inkwell/internal/platform/logger"
)

const defaultTimeout = 10 * time.Second

// Options configures the Client
type Options struct {
	// BaseURL of the email provider, no trailing slash
	BaseURL string
	// APIKey sent on every request
	APIKey string
	// Sender is the From address, validated at construction
	Sender string
	// Timeout bounds each send end to end
	Timeout time.Duration
}

// Client posts messages to the provider REST endpoint
type Client struct {
	http   *http.Client
	opts   Options
	sender subscriber.Email
	log    logger.Logger
}

// NewClient validates the sender address and builds a Client
func NewClient(o Options) (*Client, error) {
	from, err := subscriber.ParseEmail(o.Sender)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "mail sender address is invalid")
	}
	if o.BaseURL == "" {
		return nil, perr.InvalidArgf("mail base url must not be empty")
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http:   &http.Client{Timeout: o.Timeout},
		opts:   o,
		sender: from,
		log:    *logger.Named("mail"),
	}, nil
}

// wire shape the provider expects
type sendRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HTMLBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// Send delivers one message to one recipient
// transport errors and non-2xx responses both come back as transport failures
func (c *Client) Send(ctx context.Context, to subscriber.Email, subject, htmlBody, textBody string) error {
	body, err := json.Marshal(sendRequest{
		From:     c.sender.String(),
		To:       to.String(),
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "mail payload encode failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "mail new request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-ElasticEmail-ApiKey", c.opts.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeTransport, "mail send to %s failed", to.String())
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return perr.Transportf("mail provider returned %d for %s", resp.StatusCode, to.String())
	}
	return nil
}
