// Package resubscribe shows a consent dialog followed by an embedded chat and
// reports the consent event to the Resubscribe backend.
//
// A host creates one Client, calls OpenWithConsent, renders the View it
// exposes and forwards user actions to Accept, Cancel and Close.
package resubscribe

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/resubscribe/resubscribe-go/internal/config"
	"github.com/resubscribe/resubscribe-go/internal/model/dialog"
	"github.com/resubscribe/resubscribe-go/internal/service/chaturl"
	"github.com/resubscribe/resubscribe-go/internal/service/consent"
	"github.com/resubscribe/resubscribe-go/internal/service/presentation"
	"github.com/resubscribe/resubscribe-go/internal/service/view"
)

type (
	View    = view.View
	Kind    = view.Kind
	Consent = view.Consent
	Chat    = view.Chat
	Palette = view.Palette
)

const (
	KindNone    = view.KindNone
	KindConsent = view.KindConsent
	KindChat    = view.KindChat
)

var (
	ErrNilOptions        = presentation.ErrNilOptions
	ErrSessionActive     = presentation.ErrSessionActive
	ErrInvalidTransition = presentation.ErrInvalidTransition
)

// Config points the client at the Resubscribe services.
type Config struct {
	APIBaseURL string
	AppBaseURL string
	// Locale is the tag reported as brloc; empty means detect from the environment.
	Locale        string
	ReportTimeout time.Duration
}

// DefaultConfig targets the production services.
func DefaultConfig() Config {
	return Config{
		APIBaseURL: config.DefaultAPIBaseURL,
		AppBaseURL: config.DefaultAppBaseURL,
	}
}

// ConfigFromEnv reads RESUBSCRIBE_* environment variables.
func ConfigFromEnv() (Config, error) {
	sdk, err := config.LoadSDK()
	if err != nil {
		return Config{}, errors.Wrap(err, "load sdk config")
	}
	return Config{
		APIBaseURL:    sdk.APIBaseURL,
		AppBaseURL:    sdk.AppBaseURL,
		Locale:        sdk.Locale,
		ReportTimeout: sdk.ReportTimeout,
	}, nil
}

type clientOptions struct {
	logger     zerolog.Logger
	httpClient *http.Client
	copies     dialog.Store
}

// ClientOption customises a Client.
type ClientOption func(*clientOptions)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(o *clientOptions) { o.logger = logger }
}

// WithHTTPClient sets the client used for consent reports.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(o *clientOptions) { o.httpClient = client }
}

// Client owns one presentation state machine. It replaces a process-wide
// singleton: the host decides how many clients exist and how long they live.
type Client struct {
	machine  *presentation.Machine
	reporter *consent.Reporter
	builder  *chaturl.Builder
	renderer *view.Renderer
	logger   zerolog.Logger
}

// New builds a Client from cfg.
func New(cfg Config, opts ...ClientOption) (*Client, error) {
	o := clientOptions{
		logger: zerolog.Nop(),
		copies: dialog.NewMemoryStore(dialog.Seed()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	builder, err := chaturl.NewBuilder(cfg.AppBaseURL, o.logger)
	if err != nil {
		return nil, err
	}

	var localeFn func() string
	if cfg.Locale != "" {
		tag := cfg.Locale
		localeFn = func() string { return tag }
	}
	reporter, err := consent.NewReporter(consent.Config{
		APIBaseURL: cfg.APIBaseURL,
		HTTPClient: o.httpClient,
		Locale:     localeFn,
		Timeout:    cfg.ReportTimeout,
		Logger:     o.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		machine:  presentation.NewMachine(reporter, o.logger),
		reporter: reporter,
		builder:  builder,
		renderer: view.NewRenderer(o.copies, builder),
		logger:   o.logger,
	}, nil
}

// OpenWithConsent reports consent in the background and shows the consent dialog.
func (c *Client) OpenWithConsent(opts *Options) error {
	return c.machine.OpenWithConsent(opts)
}

// Accept is the consent dialog's primary button.
func (c *Client) Accept() error {
	return c.machine.Accept()
}

// Cancel is the consent dialog's secondary button.
func (c *Client) Cancel() error {
	return c.machine.Cancel()
}

// Close confirms leaving the chat.
func (c *Client) Close() error {
	return c.machine.Close()
}

// State returns the current presentation state.
func (c *Client) State() State {
	return c.machine.State()
}

// View renders the current state; it is empty while closed.
func (c *Client) View() View {
	return c.renderer.Render(c.machine.Snapshot())
}

// Watch streams rendered views until ctx is done, starting with the current one.
func (c *Client) Watch(ctx context.Context) <-chan View {
	snaps := c.machine.Watch(ctx)
	out := make(chan View, 1)
	go func() {
		defer close(out)
		for snap := range snaps {
			select {
			case out <- c.renderer.Render(snap):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// ChatURL returns the URL the web surface loads for opts.
func (c *Client) ChatURL(opts *Options) *url.URL {
	return c.builder.Build(opts)
}

// Shutdown waits for outstanding consent reports or until ctx is done.
func (c *Client) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.reporter.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		c.logger.Warn().Msg("shutdown before consent reports finished")
		return ctx.Err()
	}
}
