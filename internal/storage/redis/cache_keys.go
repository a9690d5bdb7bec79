package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	PageTextCacheTTL   = 24 * time.Hour
	RateLimitWindowTTL = 1 * time.Minute
)

// cachedPage is what the fetcher stores per URL.
type cachedPage struct {
	Text    string    `json:"text"`
	Source  string    `json:"source"`
	Fetched time.Time `json:"fetched"`
}

// PageTextKey hashes the URL so query strings never leak into key names.
func PageTextKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "page:" + hex.EncodeToString(sum[:])
}

func RateLimitKey(userID int64) string {
	return fmt.Sprintf("ratelimit:user:%d", userID)
}

// GetPageText returns ErrCacheMiss when the page was never stored or expired.
func (c *Cache) GetPageText(ctx context.Context, url string) (text, source string, err error) {
	var page cachedPage
	if err := c.Get(ctx, PageTextKey(url), &page); err != nil {
		return "", "", err
	}
	return page.Text, page.Source, nil
}

func (c *Cache) SetPageText(ctx context.Context, url, text, source string) error {
	page := cachedPage{
		Text:    text,
		Source:  source,
		Fetched: time.Now().UTC(),
	}
	return c.Set(ctx, PageTextKey(url), page, PageTextCacheTTL)
}

func (c *Cache) InvalidatePageText(ctx context.Context, url string) error {
	return c.Delete(ctx, PageTextKey(url))
}

func (c *Cache) IncrementUserRateLimit(ctx context.Context, userID int64) (int64, error) {
	key := RateLimitKey(userID)
	return c.IncrementWithExpiry(ctx, key, RateLimitWindowTTL)
}
