// Package scraper turns a posting URL into plain text by trying a list of
// fetch strategies in order.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
)

// MinContentLength is the shortest text accepted as a real page. Anything
// shorter is usually a login wall or an error stub.
const MinContentLength = 100

var ErrFetchFailed = errors.New("could not fetch page")

type Strategy interface {
	Name() string
	Fetch(ctx context.Context, url string) (string, error)
}

// PageCache is an optional store for already fetched pages.
type PageCache interface {
	GetPageText(ctx context.Context, url string) (text, source string, err error)
	SetPageText(ctx context.Context, url, text, source string) error
}

type Page struct {
	Text   string
	Source string
}

type Chain struct {
	strategies []Strategy
	cache      PageCache
	logger     *zap.Logger
}

func NewChain(logger *zap.Logger, strategies ...Strategy) *Chain {
	return &Chain{
		strategies: strategies,
		logger:     logger,
	}
}

// WithCache puts cache in front of the strategies. Cache failures never fail
// a fetch.
func (c *Chain) WithCache(cache PageCache) *Chain {
	c.cache = cache
	return c
}

func (c *Chain) Fetch(ctx context.Context, url string) (*Page, error) {
	if c.cache != nil {
		text, source, err := c.cache.GetPageText(ctx, url)
		if err == nil && utf8.RuneCountInString(text) >= MinContentLength {
			c.logger.Debug("page served from cache", zap.String("url", url))
			return &Page{Text: text, Source: source}, nil
		}
	}

	var lastErr error
	for _, s := range c.strategies {
		text, err := s.Fetch(ctx, url)
		if err != nil {
			c.logger.Warn("fetch strategy failed",
				zap.String("strategy", s.Name()),
				zap.String("url", url),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		if n := utf8.RuneCountInString(text); n < MinContentLength {
			c.logger.Warn("fetch strategy returned too little content",
				zap.String("strategy", s.Name()),
				zap.String("url", url),
				zap.Int("length", n),
			)
			lastErr = fmt.Errorf("%s: content too short (%d chars)", s.Name(), n)
			continue
		}

		c.logger.Info("page fetched",
			zap.String("strategy", s.Name()),
			zap.String("url", url),
			zap.Int("length", len(text)),
		)

		if c.cache != nil {
			if err := c.cache.SetPageText(ctx, url, text, s.Name()); err != nil {
				c.logger.Debug("failed to cache page", zap.Error(err))
			}
		}

		return &Page{Text: text, Source: s.Name()}, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, lastErr)
	}
	return nil, ErrFetchFailed
}
