package title

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DefaultUserAgent is sent with title requests.
const DefaultUserAgent = "panelo/1.0 (+title-fetch)"

// maxBodySize caps how much of a page is read looking for <title>.
const maxBodySize = 1 << 20

// ErrNoTitle is returned when a document has no usable <title>.
var ErrNoTitle = errors.New("document has no title")

// Resolver looks up a page title for a URL.
type Resolver interface {
	Resolve(ctx context.Context, url string) (string, error)
}

// HTTPResolver fetches the page over HTTP(S) and reads its <title>.
type HTTPResolver struct {
	client    *http.Client
	userAgent string
}

// Options configures an HTTPResolver.
type Options struct {
	Timeout   time.Duration // Per-request timeout (0 = client default)
	UserAgent string        // Empty = DefaultUserAgent
	Client    *http.Client  // Optional custom client
}

// NewHTTPResolver creates an HTTPResolver.
func NewHTTPResolver(opts Options) *HTTPResolver {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &HTTPResolver{client: client, userAgent: ua}
}

// Resolve performs a GET on url and returns the document title.
func (r *HTTPResolver) Resolve(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	return Extract(io.LimitReader(resp.Body, maxBodySize))
}

// Extract parses an HTML document and returns its first <title> text
// with whitespace collapsed.
func Extract(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	title := strings.Join(strings.Fields(findTitle(doc)), " ")
	if title == "" {
		return "", ErrNoTitle
	}
	return title, nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return sb.String()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// Static is a Resolver returning a fixed result.
// A zero Static always fails, which makes it a no-fetch resolver.
type Static struct {
	Title string
	Err   error
}

// Resolve returns the configured title or error.
func (s Static) Resolve(ctx context.Context, url string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if s.Title == "" {
		return "", ErrNoTitle
	}
	return s.Title, nil
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, url string) (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}
