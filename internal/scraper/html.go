package scraper

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// HTMLStrategy downloads the page directly and strips it to visible text.
type HTMLStrategy struct {
	timeout time.Duration
	logger  *zap.Logger
}

func NewHTMLStrategy(timeout time.Duration, logger *zap.Logger) *HTMLStrategy {
	return &HTMLStrategy{
		timeout: timeout,
		logger:  logger,
	}
}

func (h *HTMLStrategy) Name() string {
	return "html"
}

// createCollector builds a fresh collector per fetch so the visited-URL set
// never blocks a repeated link.
func (h *HTMLStrategy) createCollector() *colly.Collector {
	c := colly.NewCollector()
	c.UserAgent = browserUserAgent

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	c.SetRequestTimeout(h.timeout)
	return c
}

func (h *HTMLStrategy) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := h.createCollector()

	var (
		text     string
		parseErr error
	)

	c.OnResponse(func(r *colly.Response) {
		text, parseErr = VisibleText(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		h.logger.Debug("html fetch error",
			zap.String("url", url),
			zap.Int("status", r.StatusCode),
			zap.Error(err),
		)
	})

	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("visit page: %w", err)
	}
	if parseErr != nil {
		return "", fmt.Errorf("parse page: %w", parseErr)
	}

	return text, nil
}

// VisibleText drops scripts and styles and returns the remaining text one
// non-empty phrase per line.
func VisibleText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	var out []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		for _, phrase := range strings.Split(line, "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				out = append(out, phrase)
			}
		}
	}

	return strings.Join(out, "\n"), nil
}
