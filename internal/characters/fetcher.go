package characters

import (
	"context"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/valyala/fasthttp"
	"log/slog"
	"time"
)

// Fetcher retrieves the body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

// DefaultUserAgent mimics a desktop Chrome browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// browserHeaders are sent with every request so that the source serves the same markup a browser gets.
var browserHeaders = [][2]string{
	{"Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"},
	{"Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8"},
	{"Accept-Encoding", "gzip, deflate, br"},
	{"Connection", "keep-alive"},
	{"Upgrade-Insecure-Requests", "1"},
}

// HTTPFetcher fetches pages with fasthttp.
type HTTPFetcher struct {
	client    *fasthttp.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher. An empty userAgent selects [DefaultUserAgent].
func NewHTTPFetcher(userAgent string) *HTTPFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		client: &fasthttp.Client{
			Name:                userAgent,
			MaxConnsPerHost:     4,                //nolint:mnd // a handful of sequential requests
			ReadTimeout:         30 * time.Second, //nolint:mnd // upper bound, requests carry their own deadline
			WriteTimeout:        10 * time.Second, //nolint:mnd // upper bound, requests carry their own deadline
			MaxIdleConnDuration: time.Minute,
		},
		userAgent: userAgent,
	}
}

// Fetch issues a GET request. The request ends at the earlier of the context deadline and timeout. Failures and
// non-200 responses are reported as [ErrNetwork].
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(f.userAgent)
	for _, h := range browserHeaders {
		req.Header.Set(h[0], h[1])
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.Join(ErrNetwork, err), "request cancelled", slog.String("url", url))
	}
	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := f.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, errors.Wrap(errors.Join(ErrNetwork, err), "do request", slog.String("url", url))
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, errors.Wrap(ErrNetwork, "unexpected status",
			slog.String("url", url), slog.Int("status", resp.StatusCode()))
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrNetwork, err), "decode body", slog.String("url", url))
	}
	// The body buffer belongs to resp, which goes back to the pool.
	return append([]byte(nil), body...), nil
}
