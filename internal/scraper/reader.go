package scraper

import (
	"context"

	"job-deadline-bot/internal/api/reader"
)

// ReaderStrategy fetches through the hosted reader API.
type ReaderStrategy struct {
	client *reader.Client
}

func NewReaderStrategy(client *reader.Client) *ReaderStrategy {
	return &ReaderStrategy{client: client}
}

func (r *ReaderStrategy) Name() string {
	return "reader"
}

func (r *ReaderStrategy) Fetch(ctx context.Context, url string) (string, error) {
	return r.client.Read(ctx, url)
}
