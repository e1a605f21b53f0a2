package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"skyward-backend/internal/assert"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ServiceUrl returns the base url of the portal for a given district
// service name, ex. "wseduoakparkrfil".
func ServiceUrl(service string) string {
	return fmt.Sprintf("https://skyward.iscorp.com/scripts/wsisa.dll/WService=%s", service)
}

// RetryPolicy bounds every retry loop the client and the handshake run.
type RetryPolicy struct {
	// Timeout is how long a single request keeps being retried while the
	// portal cannot be reached.
	Timeout time.Duration
	// RequestInterval is the first wait between connection retries.
	RequestInterval time.Duration

	// LoginRetries is how many more times the login request is sent when
	// the portal answers with an empty body. Zero means the default, a
	// negative value disables retrying.
	LoginRetries int
	// LoginInterval is the wait between login retries.
	LoginInterval time.Duration

	// SessionAttempts caps how many times session parameters are requested
	// while the portal's page is missing them. Zero means the default.
	SessionAttempts int
	// SessionInterval is the first wait between session attempts, it
	// doubles up to SessionMaxInterval.
	SessionInterval    time.Duration
	SessionMaxInterval time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Timeout:            time.Minute,
		RequestInterval:    time.Second,
		LoginRetries:       5,
		LoginInterval:      time.Millisecond * 500,
		SessionAttempts:    8,
		SessionInterval:    time.Millisecond * 250,
		SessionMaxInterval: time.Second * 4,
	}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	d := DefaultRetryPolicy()
	if p.Timeout == 0 {
		p.Timeout = d.Timeout
	}
	if p.RequestInterval == 0 {
		p.RequestInterval = d.RequestInterval
	}
	if p.LoginRetries == 0 {
		p.LoginRetries = d.LoginRetries
	}
	if p.LoginInterval == 0 {
		p.LoginInterval = d.LoginInterval
	}
	if p.SessionAttempts == 0 {
		p.SessionAttempts = d.SessionAttempts
	}
	if p.SessionInterval == 0 {
		p.SessionInterval = d.SessionInterval
	}
	if p.SessionMaxInterval == 0 {
		p.SessionMaxInterval = d.SessionMaxInterval
	}
	return p
}

type ClientOptions struct {
	// BaseUrl is the portal's service url, see ServiceUrl.
	BaseUrl string
	// Transport defaults to a RestyTransport built from TransportOptions.
	Transport        Transport
	TransportOptions TransportOptions
	// Retry fields left zero take their value from DefaultRetryPolicy.
	Retry RetryPolicy
}

// Client issues requests against one portal service. Requests are sent one
// at a time by the caller, a Client must not be used by two sessions at
// once.
type Client struct {
	BaseUrl   string
	transport Transport
	retry     RetryPolicy
}

func NewClient(opts ClientOptions) (*Client, error) {
	assert.NotEmptyStr(opts.BaseUrl, "base url")

	transport := opts.Transport
	if transport == nil {
		restyTransport, err := NewRestyTransport(opts.TransportOptions)
		if err != nil {
			return nil, err
		}
		transport = restyTransport
	}

	return &Client{
		BaseUrl:   strings.TrimSuffix(opts.BaseUrl, "/"),
		transport: transport,
		retry:     opts.Retry.withDefaults(),
	}, nil
}

// Url resolves a page of the portal, ex. "sfgradebook001.w".
func (c *Client) Url(page string) string {
	return c.BaseUrl + "/" + page
}

func (c *Client) RetryPolicy() RetryPolicy {
	return c.retry
}

// Do sends a request, retrying with exponential backoff for as long as the
// portal cannot be reached within the retry policy's timeout.
func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	ctx, span := tracer.Start(ctx, "client:Do", trace.WithAttributes(
		attribute.String("url", req.Url),
	))
	defer span.End()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retry.RequestInterval
	policy.MaxInterval = c.retry.Timeout / 4
	policy.MaxElapsedTime = c.retry.Timeout

	attempt := 0
	res, err := backoff.RetryNotifyWithData(
		func() (Response, error) {
			attempt++
			res, err := c.transport.Do(ctx, req)
			if err != nil && ctx.Err() != nil {
				return Response{}, backoff.Permanent(fmt.Errorf("%w: %w", ctx.Err(), err))
			}
			return res, err
		},
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			requestRetries.Add(ctx, 1)
			slog.WarnContext(
				ctx, "could not reach portal, retrying",
				"url", req.Url,
				"attempt", attempt,
				"next", next.String(),
				"err", err,
			)
		},
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "portal unreachable")
		return Response{}, fmt.Errorf("%w: %s after %d attempts: %w", ErrUnreachable, req.Url, attempt, err)
	}

	if !res.StatusOk {
		slog.WarnContext(ctx, "portal responded with non-ok status", "url", req.Url, "status", res.Status)
	}
	span.SetAttributes(attribute.Int("attempts", attempt))
	return res, nil
}
