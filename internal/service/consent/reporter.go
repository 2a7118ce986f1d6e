package consent

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/resubscribe/resubscribe-go/internal/locale"
	"github.com/resubscribe/resubscribe-go/internal/model/session"
	"github.com/resubscribe/resubscribe-go/internal/urlquery"
)

const (
	consentPath    = "/sessions/consent"
	apiKeyHeader   = "X-API-Key"
	defaultTimeout = 10 * time.Second
)

// ErrInvalidBaseURL is returned when the api base URL is not absolute.
var ErrInvalidBaseURL = errors.New("api base url must be an absolute http(s) url")

// Config controls how consent events are delivered.
type Config struct {
	APIBaseURL string
	HTTPClient *http.Client
	// Locale returns the browser-locale tag reported as brloc. Defaults to locale.Detect.
	Locale  func() string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Reporter registers consent events with the backend. Delivery is best effort:
// nothing is retried and failures never reach the caller.
type Reporter struct {
	endpoint string
	client   *http.Client
	locale   func() string
	timeout  time.Duration
	logger   zerolog.Logger
	wg       sync.WaitGroup
}

// NewReporter validates cfg and fills in defaults.
func NewReporter(cfg Config) (*Reporter, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.APIBaseURL))
	if err != nil {
		return nil, errors.Wrap(err, "parse api base url")
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, errors.Wrapf(ErrInvalidBaseURL, "%q", cfg.APIBaseURL)
	}
	base.RawQuery = ""
	base.Fragment = ""
	base.RawFragment = ""

	client := cfg.HTTPClient
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	localeFn := cfg.Locale
	if localeFn == nil {
		localeFn = locale.Detect
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Reporter{
		endpoint: strings.TrimRight(base.String(), "/") + consentPath,
		client:   client,
		locale:   localeFn,
		timeout:  timeout,
		logger:   cfg.Logger.With().Str("component", "consent").Logger(),
	}, nil
}

// BuildRequest assembles GET {apiBaseUrl}/sessions/consent for opts.
func (r *Reporter) BuildRequest(ctx context.Context, opts *session.Options) (*http.Request, error) {
	var q urlquery.Ordered
	q.Add("slug", opts.Slug())
	q.Add("uid", opts.UserID())
	q.Add("ait", opts.AIType().String())
	if email, ok := opts.UserEmail(); ok {
		q.Add("email", email)
	}
	q.Add("brloc", locale.Language(r.locale()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build consent request")
	}
	req.Header.Set(apiKeyHeader, opts.APIKey())
	return req, nil
}

// Report sends the consent event in the background and returns immediately.
func (r *Reporter) Report(opts *session.Options) {
	if opts == nil {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.send(opts)
	}()
}

// Wait blocks until every in-flight report has finished.
func (r *Reporter) Wait() {
	r.wg.Wait()
}

func (r *Reporter) send(opts *session.Options) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	logger := r.logger.With().Str("slug", opts.Slug()).Str("ait", opts.AIType().String()).Logger()

	req, err := r.BuildRequest(ctx, opts)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to register consent")
		return
	}

	resp, err := r.client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to register consent")
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Debug().Int("status", resp.StatusCode).Msg("consent endpoint returned error status")
		return
	}
	logger.Debug().Int("status", resp.StatusCode).Msg("consent registered")
}
