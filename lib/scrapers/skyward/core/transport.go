package core

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"skyward-backend/lib/restyutil"
	"skyward-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type Request struct {
	Method  string
	Url     string
	Form    Form
	Headers map[string]string
	Query   map[string]string
}

type Response struct {
	StatusOk bool
	Status   int
	Text     string
	Doc      *goquery.Document
}

func NewResponse(status int, text string) (Response, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return Response{}, err
	}
	return Response{
		StatusOk: status >= 200 && status < 300,
		Status:   status,
		Text:     text,
		Doc:      doc,
	}, nil
}

// Transport issues a single request against the portal. An error means the
// portal could not be reached, any response that was received is returned
// without an error regardless of its status.
type Transport interface {
	Do(ctx context.Context, req Request) (Response, error)
}

type TransportOptions struct {
	// Timeout for a single request, defaults to 30 seconds.
	Timeout time.Duration
	// RequestsPerSecond defaults to 2.
	RequestsPerSecond float64
	UserAgent         string
	// DisableCloudflareBypass leaves the default http transport alone.
	DisableCloudflareBypass bool
	// Dump receives a copy of every request and response, may be nil.
	Dump restyutil.InstrumentOutput
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.13; rv:62.0) Gecko/20100101 Firefox/62.0"

// RestyTransport is a Transport that keeps its own cookie jar, it should
// not be shared between sessions.
type RestyTransport struct {
	http *resty.Client
}

func NewRestyTransport(opts TransportOptions) (*RestyTransport, error) {
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	if !opts.DisableCloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	client.SetTimeout(opts.Timeout)

	// max burst >= requests per second just means that no requests will be dropped
	burst := int(opts.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, "skyward.lib.scrapers.skyward.http")
	restyutil.InstrumentClient(client, opts.Dump)

	return &RestyTransport{http: client}, nil
}

func (t *RestyTransport) Do(ctx context.Context, req Request) (Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	r := t.http.R().
		SetContext(ctx).
		SetHeaders(req.Headers).
		SetQueryParams(req.Query)
	if len(req.Form) > 0 {
		r.SetFormData(req.Form)
	}

	res, err := r.Execute(method, req.Url)
	if err != nil {
		return Response{}, err
	}
	return NewResponse(res.StatusCode(), res.String())
}
