package e2etest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/spoonmap/internal/errors"
)

// Client is a browser-like HTTP client that keeps the session cookie between requests.
type Client struct {
	client *http.Client
	url    string
}

var ErrUnexpectedStatus = errors.NewSentinel("unexpected status code")

// NewClient creates a client for the server at url.
func NewClient(url string) (*Client, error) {
	jar, err := newPlainHTTPJar()
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}
	return &Client{
		client: &http.Client{Jar: jar}, //nolint:exhaustruct // defaults are fine for tests
		url:    url,
	}, nil
}

// WaitForReady polls urlPath until it answers 200 OK. It gives up after a second or when ctx is done.
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

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	req, err := c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	return c.do(req)
}

// GetDoc fetches a URL and returns a goquery document. Responses other than 200 OK are errors.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	doc, status, err := c.GetDocStatus(ctx, urlPath)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errors.Wrap(ErrUnexpectedStatus, "get", slog.String("url", urlPath), slog.Int("status", status))
	}
	return doc, nil
}

// GetDocStatus fetches a URL and returns the document together with the status code. Only server errors fail.
func (c *Client) GetDocStatus(ctx context.Context, urlPath string) (*goquery.Document, int, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return nil, 0, errors.Wrap(err, "client get")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, resp.StatusCode, errors.Wrap(ErrUnexpectedStatus, "get", slog.Int("status", resp.StatusCode))
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrap(err, "create document from reader")
	}
	return doc, resp.StatusCode, nil
}

// GetPartial fetches a URL the way htmx does and returns the fragment.
func (c *Client) GetPartial(ctx context.Context, urlPath string) (*goquery.Document, error) {
	req, err := c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	req.Header.Set("Hx-Request", "true")
	return c.doDoc(req)
}

// SubmitForm loads formURLPath and submits the first form matching formSelector.
func (c *Client) SubmitForm(ctx context.Context, formURLPath, formSelector string) (*goquery.Document, error) {
	doc, err := c.GetDoc(ctx, formURLPath)
	if err != nil {
		return nil, errors.Wrap(err, "get document")
	}
	form := doc.Find(formSelector).First()
	if form.Length() == 0 {
		return nil, errors.New("form not found", slog.String("selector", formSelector))
	}
	return c.Submit(ctx, form)
}

// Submit posts the named inputs and buttons of form to its action, including the csrf_token field rendered into
// the form.
func (c *Client) Submit(ctx context.Context, form *goquery.Selection) (*goquery.Document, error) {
	action, ok := form.Attr("action")
	if !ok {
		return nil, errors.New("form has no action")
	}
	formData := neturl.Values{}
	form.Find("input[name], button[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		value, _ := s.Attr("value")
		formData.Add(name, value)
	})
	if formData.Get("csrf_token") == "" {
		return nil, errors.New("csrf_token not found in form", slog.String("action", action))
	}
	return c.PostForm(ctx, action, formData)
}

// PostForm posts formData to urlPath and returns the document the server answers or redirects to.
func (c *Client) PostForm(ctx context.Context, urlPath string, formData neturl.Values) (*goquery.Document, error) {
	req, err := c.newRequestWithContext(ctx, http.MethodPost, urlPath, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.doDoc(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

func (c *Client) doDoc(req *http.Request) (*goquery.Document, error) {
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.Wrap(ErrUnexpectedStatus, "request",
			slog.String("url", req.URL.String()), slog.Int("status", resp.StatusCode))
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

// newRequestWithContext creates a new HTTP request to the server that respects the given context.
func (c *Client) newRequestWithContext(
	ctx context.Context,
	method, urlPath string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	return req, nil
}
