package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/textproto"
	"os"
	"time"

	"github.com/jlaffaye/ftp"
	"golang.org/x/net/html/charset"
)

const (
	defaultTimeout        = 60 * time.Second
	defaultMaxContentSize = 1 << 30
	defaultUserAgent      = "semonto/1.0"
	defaultFTPUser        = "anonymous"
	defaultFTPPassword    = "anonymous"
)

// Resource is a retrieved ontology document.
type Resource struct {
	Location    Location
	Body        []byte
	ContentType string
	ModTime     time.Time
}

// Fetcher retrieves ontology documents from local paths, HTTP(S) and FTP.
type Fetcher struct {
	client         *http.Client
	timeout        time.Duration
	userAgent      string
	maxContentSize int64
	ftpUser        string
	ftpPassword    string
	logger         *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout bounds each transfer.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithFTPCredentials sets the login used for ftp:// locations without
// userinfo. Defaults to anonymous.
func WithFTPCredentials(user, password string) Option {
	return func(f *Fetcher) {
		if user != "" {
			f.ftpUser = user
			f.ftpPassword = password
		}
	}
}

// WithMaxContentSize limits the size of a retrieved document.
func WithMaxContentSize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxContentSize = n
		}
	}
}

// WithUserAgent sets the HTTP User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher creates a fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:        defaultTimeout,
		userAgent:      defaultUserAgent,
		maxContentSize: defaultMaxContentSize,
		ftpUser:        defaultFTPUser,
		ftpPassword:    defaultFTPPassword,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: f.timeout,
				MaxIdleConns:          16,
				IdleConnTimeout:       90 * time.Second,
			},
		}
	}
	return f
}

// Open parses raw and fetches it with a default fetcher.
func Open(ctx context.Context, raw string) (*Resource, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}
	return NewFetcher().Fetch(ctx, loc)
}

// Fetch retrieves the document at loc.
func (f *Fetcher) Fetch(ctx context.Context, loc Location) (*Resource, error) {
	start := time.Now()

	var (
		res *Resource
		err error
	)
	switch loc.Scheme {
	case SchemeFile:
		res, err = f.fetchFile(loc)
	case SchemeHTTP, SchemeHTTPS:
		res, err = f.fetchHTTP(ctx, loc)
	case SchemeFTP:
		res, err = f.fetchFTP(ctx, loc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, loc.Scheme)
	}
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Fetched ontology source",
		slog.String("location", loc.String()),
		slog.Int("bytes", len(res.Body)),
		slog.Duration("elapsed", time.Since(start)))
	return res, nil
}

func (f *Fetcher) fetchFile(loc Location) (*Resource, error) {
	info, err := os.Stat(loc.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, loc.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", loc.Path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", loc.Path)
	}
	if info.Size() > f.maxContentSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, loc.Path, f.maxContentSize)
	}

	body, err := os.ReadFile(loc.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", loc.Path, err)
	}
	return &Resource{Location: loc, Body: body, ModTime: info.ModTime()}, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, loc Location) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.URL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/obo, application/json, application/yaml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, loc, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, loc)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %s: HTTP %d %s", ErrFetch, loc, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := f.readBody(decodeCharset(resp.Body, contentType), loc)
	if err != nil {
		return nil, err
	}

	res := &Resource{Location: loc, Body: body, ContentType: contentType}
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			res.ModTime = t
		}
	}
	return res, nil
}

func (f *Fetcher) fetchFTP(ctx context.Context, loc Location) (*Resource, error) {
	addr := loc.URL.Host
	if loc.URL.Port() == "" {
		addr = net.JoinHostPort(loc.URL.Hostname(), "21")
	}

	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(f.timeout))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, loc, err)
	}
	defer func() {
		if err := conn.Quit(); err != nil {
			f.logger.Debug("FTP quit failed", slog.String("location", loc.String()), slog.Any("error", err))
		}
	}()

	user, password := f.ftpUser, f.ftpPassword
	if ui := loc.URL.User; ui != nil {
		user = ui.Username()
		password, _ = ui.Password()
	}
	if err := conn.Login(user, password); err != nil {
		return nil, fmt.Errorf("%w: %s: login: %w", ErrFetch, loc, err)
	}

	resp, err := conn.Retr(loc.URL.Path)
	if err != nil {
		var protoErr *textproto.Error
		if errors.As(err, &protoErr) && protoErr.Code == ftp.StatusFileUnavailable {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, loc)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, loc, err)
	}
	defer resp.Close()

	body, err := f.readBody(resp, loc)
	if err != nil {
		return nil, err
	}
	return &Resource{Location: loc, Body: body}, nil
}

func (f *Fetcher) readBody(r io.Reader, loc Location) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, f.maxContentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %w", ErrFetch, loc, err)
	}
	if int64(len(body)) > f.maxContentSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, loc, f.maxContentSize)
	}
	return body, nil
}

// decodeCharset converts a body with a declared non-UTF-8 charset to UTF-8.
// Bodies without a charset parameter are passed through.
func decodeCharset(r io.Reader, contentType string) io.Reader {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return r
	}
	cs := params["charset"]
	if cs == "" || cs == "utf-8" || cs == "UTF-8" {
		return r
	}
	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return r
	}
	return decoded
}
