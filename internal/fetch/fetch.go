// Package fetch pulls the raw Markdown listing documents. Any fetch
// failure is fatal for the run; there are no retries here because the
// next scheduled run is the retry.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"jobdigest/pkg/logging"
)

// Source is one configured listing document.
type Source struct {
	Name string
	URL  string
}

// Document is the raw text of a fetched source.
type Document struct {
	Source Source
	Body   []byte
}

const maxBodyBytes = 8 << 20 // listing READMEs are far below this

type Client struct {
	http    *http.Client
	limiter *HostLimiter
	log     *logging.Logger
}

func NewClient(timeout time.Duration, limiter *HostLimiter, log *logging.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if limiter == nil {
		limiter = NewHostLimiter(1.0, 2)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: limiter,
		log:     log,
	}
}

// FetchAll gathers every source concurrently. The GETs are independent
// of each other; everything after fetching stays sequential. Results
// come back in source order, and one failure fails the whole call.
func (c *Client) FetchAll(ctx context.Context, sources []Source) ([]Document, error) {
	docs := make([]Document, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			doc, err := c.Fetch(ctx, src)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *Client) Fetch(ctx context.Context, src Source) (Document, error) {
	if err := c.limiter.WaitURL(ctx, src.URL); err != nil {
		return Document{}, fmt.Errorf("source %s: rate wait: %w", src.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return Document{}, fmt.Errorf("source %s: build request: %w", src.Name, err)
	}
	req.Header.Set("User-Agent", "jobdigest/1.0")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("source %s: fetch: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("source %s: fetch: upstream returned %s", src.Name, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Document{}, fmt.Errorf("source %s: read body: %w", src.Name, err)
	}

	c.log.Debug("fetched source", "source", src.Name, "bytes", len(body), "elapsed", time.Since(start))
	return Document{Source: src, Body: body}, nil
}
