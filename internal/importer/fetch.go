package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"intern-match/internal/domain/internship"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const (
	userAgent   = "InternMatchImporter/1.0"
	maxFeedSize = 10 << 20
)

// Loader reads catalog feeds from local files or http(s) URLs.
type Loader struct {
	log      *zap.Logger
	attempts int
	timeout  time.Duration
	workers  int
}

func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log.Named("importer"), attempts: 3, timeout: 25 * time.Second, workers: 4}
}

// Load reads one source.
func (l *Loader) Load(ctx context.Context, source string) ([]internship.Internship, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New("empty source")
	}
	var (
		body []byte
		err  error
	)
	if isRemote(source) {
		body, err = l.fetchWithRetry(ctx, source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	items, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	l.log.Info("feed loaded", zap.String("source", source), zap.Int("internships", len(items)))
	return items, nil
}

// LoadAll reads every source concurrently. A failing source is logged and
// skipped; the error is returned only when nothing could be loaded.
func (l *Loader) LoadAll(ctx context.Context, sources []string) ([]internship.Internship, error) {
	if len(sources) == 0 {
		return nil, errors.New("no sources given")
	}

	pool := NewWorkerPool(l.workers, len(sources))
	pool.SetRateLimit(4)
	results := pool.Run(ctx)
	for _, src := range sources {
		pool.Submit(func(ctx context.Context) ([]internship.Internship, error) {
			return l.Load(ctx, src)
		})
	}
	pool.Close()

	var (
		out     []internship.Internship
		lastErr error
	)
	for res := range results {
		if res.Err != nil {
			l.log.Warn("feed skipped", zap.Error(res.Err))
			lastErr = res.Err
			continue
		}
		out = append(out, res.Items...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

func (l *Loader) fetchWithRetry(ctx context.Context, source string) ([]byte, error) {
	var lastErr error
	for i := 0; i < l.attempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := l.fetch(source)
		if err == nil {
			return body, nil
		}
		lastErr = err
		l.log.Debug("fetch failed", zap.String("url", source), zap.Int("attempt", i+1), zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(300*(i+1)) * time.Millisecond):
		}
	}
	return nil, lastErr
}

func (l *Loader) fetch(source string) ([]byte, error) {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxBodySize(maxFeedSize),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(l.timeout)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "application/json")
	})

	var (
		body   []byte
		reqErr error
	)
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 && r.StatusCode != http.StatusOK {
			reqErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
			return
		}
		reqErr = err
	})

	if err := c.Visit(source); err != nil && reqErr == nil {
		reqErr = err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return body, nil
}

func isRemote(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
