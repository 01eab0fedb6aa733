package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Kind classifies a fetch failure so callers can distinguish transport
// problems from HTTP-level rejections without parsing error strings.
type Kind int

const (
	KindNetwork Kind = iota
	KindTimeout
	KindHTTPStatus
	KindTooLarge
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	case KindTooLarge:
		return "too_large"
	default:
		return "network"
	}
}

// Error is returned for any failed fetch. The page body is never returned
// alongside it: a failed fetch yields no partial data.
type Error struct {
	Kind   Kind
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client performs single-shot HTTP GETs with an explicit timeout and a
// response size cap. No retries: the page is fetched exactly once.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

func NewClient(timeout time.Duration, userAgent string, maxSizeMB int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  int64(maxSizeMB) * 1024 * 1024,
	}
}

// Fetch retrieves the raw bytes of a page. Any content type is accepted;
// downstream extraction assumes HTML and tolerates everything else.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: classify(err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindHTTPStatus, URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, &Error{Kind: classify(err), URL: url, Err: err}
	}
	if int64(len(body)) > c.maxBytes {
		return nil, &Error{Kind: KindTooLarge, URL: url, Err: fmt.Errorf("response exceeds %d bytes", c.maxBytes)}
	}

	return body, nil
}

func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}
