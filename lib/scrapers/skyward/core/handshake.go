package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"skyward-backend/internal/assert"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const (
	stage_session_params = "session params"
	loginPage            = "skyporthttp.w"
)

type State int

const (
	StateUnauthenticated State = iota
	StateAwaitingLoginResponse
	StateAwaitingSessionParams
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAwaitingLoginResponse:
		return "awaiting login response"
	case StateAwaitingSessionParams:
		return "awaiting session params"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var errEmptyLogin = errors.New("login response was empty")
var errMissingSessionFields = errors.New("session fields missing")

// Handshake logs into the portal and obtains the tokens of a session. A
// Handshake is used once, a failed handshake stays failed.
type Handshake struct {
	client  *Client
	state   State
	failure error
}

func NewHandshake(client *Client) *Handshake {
	assert.NotNil(client, "client")
	return &Handshake{client: client}
}

func (h *Handshake) State() State {
	return h.state
}

// Err returns the reason the handshake failed, if it did.
func (h *Handshake) Err() error {
	return h.failure
}

func (h *Handshake) fail(err error) error {
	h.state = StateFailed
	h.failure = err
	return err
}

func (h *Handshake) expect(state State, step string) error {
	if h.state == StateFailed {
		return h.failure
	}
	if h.state != state {
		return fmt.Errorf("skyward: cannot %s while %s", step, h.state)
	}
	return nil
}

// Authenticate runs the whole handshake.
func (h *Handshake) Authenticate(ctx context.Context, username, password string) (SessionParams, error) {
	ctx, span := tracer.Start(ctx, "handshake:Authenticate")
	defer span.End()

	data, err := h.Login(ctx, username, password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return SessionParams{}, err
	}
	session, err := h.EstablishSession(ctx, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "establish session failed")
		return SessionParams{}, err
	}
	return session, nil
}

// Login submits credentials to the login endpoint. The portal sometimes
// answers with nothing at all, in which case the login is sent again a
// bounded number of times.
func (h *Handshake) Login(ctx context.Context, username, password string) (LoginData, error) {
	if err := h.expect(StateUnauthenticated, "login"); err != nil {
		return LoginData{}, err
	}
	h.state = StateAwaitingLoginResponse

	ctx, span := tracer.Start(ctx, "handshake:Login")
	defer span.End()

	retry := h.client.retry
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(retry.LoginInterval), uint64(max(retry.LoginRetries, 0))),
		ctx,
	)

	form := LoginForm(username, password)
	data, err := backoff.RetryNotifyWithData(
		func() (LoginData, error) {
			handshakeAttempts.Add(ctx, 1, metric.WithAttributes(attribute.String("step", "login")))

			res, err := h.client.Do(ctx, Request{
				Url:     h.client.Url(loginPage),
				Form:    form,
				Headers: loginHeaders(h.client.BaseUrl),
			})
			if err != nil {
				return LoginData{}, backoff.Permanent(err)
			}
			if strings.Contains(res.Text, "Invalid") {
				return LoginData{}, backoff.Permanent(ErrBadCredentials)
			}
			if res.Text == "" {
				return LoginData{}, errEmptyLogin
			}

			data, err := DecodeLoginResponse(h.client.BaseUrl, res.Text)
			if err != nil {
				return LoginData{}, backoff.Permanent(err)
			}
			return data, nil
		},
		policy,
		func(err error, next time.Duration) {
			slog.WarnContext(ctx, "retrying login", "next", next.String(), "err", err)
		},
	)
	if err != nil {
		if errors.Is(err, errEmptyLogin) {
			err = ErrNoLoginData
		} else if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ErrUnreachable, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return LoginData{}, h.fail(err)
	}

	h.state = StateAwaitingSessionParams
	return data, nil
}

// EstablishSession follows the login's redirect and reads the session
// tokens out of the hidden fields of the page it lands on. The page is
// requested again with exponential backoff while the fields are missing.
func (h *Handshake) EstablishSession(ctx context.Context, data LoginData) (SessionParams, error) {
	if err := h.expect(StateAwaitingSessionParams, "establish session"); err != nil {
		return SessionParams{}, err
	}

	ctx, span := tracer.Start(ctx, "handshake:EstablishSession")
	defer span.End()

	retry := h.client.retry
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = retry.SessionInterval
	exponential.MaxInterval = retry.SessionMaxInterval
	exponential.MaxElapsedTime = 0

	attempts := retry.SessionAttempts
	if attempts < 1 {
		attempts = 1
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(exponential, uint64(attempts-1)),
		ctx,
	)

	attempt := 0
	session, err := backoff.RetryNotifyWithData(
		func() (SessionParams, error) {
			attempt++
			handshakeAttempts.Add(ctx, 1, metric.WithAttributes(attribute.String("step", "session")))

			res, err := h.client.Do(ctx, Request{
				Url:  data.NewUrl,
				Form: data.Params,
			})
			if err != nil {
				return SessionParams{}, backoff.Permanent(err)
			}
			if res.Doc == nil {
				return SessionParams{}, fmt.Errorf("%w: empty page", errMissingSessionFields)
			}

			sessionId, ok := res.Doc.Find("#sessionid").First().Attr("value")
			if !ok {
				return SessionParams{}, fmt.Errorf("%w: #sessionid", errMissingSessionFields)
			}
			encses, ok := res.Doc.Find("#encses").First().Attr("value")
			if !ok {
				return SessionParams{}, fmt.Errorf("%w: #encses", errMissingSessionFields)
			}

			return SessionParams{
				SessionId: sessionId,
				EncSes:    encses,
				Login:     data.Params,
			}, nil
		},
		policy,
		func(err error, next time.Duration) {
			slog.WarnContext(
				ctx, "session fields missing, retrying",
				"attempt", attempt,
				"next", next.String(),
				"err", err,
			)
		},
	)
	if err != nil {
		if errors.Is(err, errMissingSessionFields) {
			err = Malformed(stage_session_params, "%v after %d attempts", err, attempt)
		} else if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", Malformed(stage_session_params, "gave up after %d attempts", attempt), err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "establish session failed")
		return SessionParams{}, h.fail(err)
	}

	h.state = StateReady
	return session, nil
}
