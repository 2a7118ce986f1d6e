package chaturl

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/resubscribe/resubscribe-go/internal/model/session"
	"github.com/resubscribe/resubscribe-go/internal/urlquery"
)

// ErrInvalidBaseURL is returned when the app base URL is not absolute.
var ErrInvalidBaseURL = errors.New("app base url must be an absolute http(s) url")

// Builder produces the chat URL handed to the web-rendering surface.
type Builder struct {
	base        url.URL
	basePath    string
	baseRawPath string
	logger      zerolog.Logger
}

// NewBuilder validates appBaseURL, e.g. "https://app.resubscribe.ai".
func NewBuilder(appBaseURL string, logger zerolog.Logger) (*Builder, error) {
	u, err := url.Parse(strings.TrimSpace(appBaseURL))
	if err != nil {
		return nil, errors.Wrap(err, "parse app base url")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Wrapf(ErrInvalidBaseURL, "%q", appBaseURL)
	}

	b := &Builder{
		base:        url.URL{Scheme: u.Scheme, User: u.User, Host: u.Host},
		basePath:    strings.TrimRight(u.Path, "/"),
		baseRawPath: strings.TrimRight(u.EscapedPath(), "/"),
		logger:      logger,
	}
	return b, nil
}

// Build returns {base}/chat/{slug}?ait=&uid=&iframe=true&hideclose=true[&email=]#apiKey={apiKey}.
// The api key lives only in the fragment, which browsers never send to the server.
func (b *Builder) Build(opts *session.Options) *url.URL {
	var q urlquery.Ordered
	q.Add("ait", opts.AIType().String())
	q.Add("uid", opts.UserID())
	q.Add("iframe", "true")
	q.Add("hideclose", "true")
	if email, ok := opts.UserEmail(); ok {
		q.Add("email", email)
	}

	u := b.base
	u.Path = b.basePath + "/chat/" + opts.Slug()
	u.RawPath = b.baseRawPath + "/chat/" + url.PathEscape(opts.Slug())
	u.RawQuery = q.Encode()
	u.Fragment = "apiKey=" + opts.APIKey()
	u.RawFragment = "apiKey=" + escapeFragmentValue(opts.APIKey())

	b.logger.Debug().Str("url", Redact(u.String())).Msg("built chat url")
	return &u
}

// String is Build(opts).String().
func (b *Builder) String(opts *session.Options) string {
	return b.Build(opts).String()
}

// escapeFragmentValue query-escapes v but keeps spaces as %20, since '+' is
// literal inside a fragment.
func escapeFragmentValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// Redact strips the fragment so the credential never reaches logs.
func Redact(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return raw[:i] + "#redacted"
	}
	return raw
}
