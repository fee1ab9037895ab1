package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/PuerkitoBio/goquery"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

var ErrUnexpectedStatus = errors.NewSentinel("unexpected status code")

// Client drives the game like a browser would: it keeps cookies and submits forms with their CSRF token.
type Client struct {
	client *http.Client
	jar    *plainJar
	url    string
}

// NewClient creates a cookie-keeping HTTP client for the server at url.
func NewClient(url string) (*Client, error) {
	jar, err := newPlainJar()
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}
	return &Client{
		client: &http.Client{Jar: jar, Timeout: 30 * time.Second}, //nolint:mnd // generous for refreshes
		jar:    jar,
		url:    url,
	}, nil
}

// URL returns the base URL of the server.
func (c *Client) URL() string {
	return c.url
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	for {
		resp, err := c.Get(ctx, urlPath)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Do sends req with the client's cookies.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request", slog.String("url", req.URL.String()))
	}
	return resp, nil
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, urlPath, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return nil, errors.Wrap(err, "client get")
	}
	return readDoc(resp)
}

// NewRequest creates a request to the server that respects the given context.
func (c *Client) NewRequest(ctx context.Context, method, urlPath string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request", slog.String("path", urlPath))
	}
	return req, nil
}

func readDoc(resp *http.Response) (*goquery.Document, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.Wrap(ErrUnexpectedStatus, "read document", slog.Int("status", resp.StatusCode))
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

// CSRFToken extracts the CSRF token of the form posting to formActionURLPath.
func CSRFToken(doc *goquery.Document, formActionURLPath string) (string, error) {
	formSelector := fmt.Sprintf("form[action='%s']", formActionURLPath)
	form := doc.Find(formSelector)
	if form.Length() == 0 {
		return "", errors.New("form not found", slog.String("selector", formSelector))
	}
	csrfToken, ok := form.First().Find("input[name=csrf_token]").Attr("value")
	if !ok {
		return "", errors.New("csrf_token not found in form", slog.String("selector", formSelector))
	}
	return csrfToken, nil
}

// PostForm posts fields to formActionURLPath with the CSRF token taken from doc. headers are added to the
// request, for example HX-Request.
func (c *Client) PostForm(
	ctx context.Context,
	doc *goquery.Document,
	formActionURLPath string,
	fields neturl.Values,
	headers http.Header,
) (*http.Response, error) {
	csrfToken, err := CSRFToken(doc, formActionURLPath)
	if err != nil {
		return nil, errors.Wrap(err, "extract CSRF token")
	}
	formData := neturl.Values{}
	for key, values := range fields {
		formData[key] = values
	}
	formData.Set("csrf_token", csrfToken)

	req, err := c.NewRequest(ctx, http.MethodPost, formActionURLPath, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return c.Do(req)
}

// SubmitForm submits the form with action formActionURLPath found in doc and returns the response document.
func (c *Client) SubmitForm(
	ctx context.Context,
	doc *goquery.Document,
	formActionURLPath string,
	fields neturl.Values,
) (*goquery.Document, error) {
	resp, err := c.PostForm(ctx, doc, formActionURLPath, fields, nil)
	if err != nil {
		return nil, errors.Wrap(err, "post form", slog.String("action", formActionURLPath))
	}
	return readDoc(resp)
}

// GetJSON decodes the JSON response of a GET request into out.
func (c *Client) GetJSON(ctx context.Context, urlPath string, out any) (int, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, urlPath, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req, out)
}

// PostJSON sends in as a JSON body and decodes the JSON response into out. in and out may be nil.
func (c *Client) PostJSON(ctx context.Context, urlPath string, in, out any) (int, error) {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return 0, errors.Wrap(err, "encode request body")
		}
	}
	req, err := c.NewRequest(ctx, http.MethodPost, urlPath, &body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) (int, error) {
	resp, err := c.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, errors.Wrap(err, "decode response body", slog.Int("status", resp.StatusCode))
	}
	return resp.StatusCode, nil
}
