// Package tracker turns a chat message into a stored job record and exposes
// the record operations the bot commands need.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"job-deadline-bot/internal/extractor"
	"job-deadline-bot/internal/models"
	"job-deadline-bot/internal/scraper"
)

var ErrNoJobPosting = errors.New("message has no link or job description")

// Store is the record store contract. Indexes are 1-based positions in
// store order.
type Store interface {
	Init(ctx context.Context) error
	Append(ctx context.Context, rec *models.JobRecord) error
	ListAll(ctx context.Context) ([]*models.JobRecord, error)
	SetStatus(ctx context.Context, index int, status models.Status) (bool, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (*scraper.Page, error)
}

type Extractor interface {
	Extract(ctx context.Context, text string) extractor.Result
}

// SourceMessage marks records extracted from pasted text instead of a page.
const SourceMessage = "message"

type Submission struct {
	Record *models.JobRecord
	// Missing names the fields extraction could not recover.
	Missing []string
	// FetchedFrom is the fetch strategy name or SourceMessage.
	FetchedFrom string
	// ExtractedBy is the extraction strategy that found the deadline.
	ExtractedBy string
}

type Service struct {
	fetcher   Fetcher
	extractor Extractor
	store     Store
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func New(fetcher Fetcher, ext Extractor, store Store, loc *time.Location, now func() time.Time, logger *zap.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		fetcher:   fetcher,
		extractor: ext,
		store:     store,
		loc:       loc,
		now:       now,
		logger:    logger,
	}
}

// Submit stores a record for the posting in text. A pasted job description
// is used directly; otherwise the first link is fetched. The record is saved
// even when extraction recovers nothing.
func (s *Service) Submit(ctx context.Context, text string) (*Submission, error) {
	link := ExtractURL(text)

	var body, fetchedFrom string
	switch {
	case LooksLikeJobDescription(text):
		body, fetchedFrom = text, SourceMessage
	case link == "":
		return nil, ErrNoJobPosting
	default:
		page, err := s.fetcher.Fetch(ctx, link)
		if err != nil {
			return nil, fmt.Errorf("fetch posting: %w", err)
		}
		body, fetchedFrom = page.Text, page.Source
	}

	res := s.extractor.Extract(ctx, body)

	rec := &models.JobRecord{
		Company:  res.Company,
		Position: res.Position,
		Deadline: res.Deadline,
		Link:     link,
		Status:   models.StatusOpen,
		Salary:   res.Salary,
		Location: res.Location,
		AddedOn:  s.now().In(s.loc),
	}

	if err := s.store.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}

	s.logger.Info("job submitted",
		zap.String("link", link),
		zap.String("fetched_from", fetchedFrom),
		zap.String("extracted_by", res.Source),
		zap.Strings("missing", res.Missing),
	)

	return &Submission{
		Record:      rec,
		Missing:     res.Missing,
		FetchedFrom: fetchedFrom,
		ExtractedBy: res.Source,
	}, nil
}

func (s *Service) List(ctx context.Context) ([]*models.JobRecord, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return records, nil
}

// MarkApplied is idempotent: false with a nil error means the record was
// already applied.
func (s *Service) MarkApplied(ctx context.Context, index int) (bool, error) {
	changed, err := s.store.SetStatus(ctx, index, models.StatusApplied)
	if err != nil {
		return false, fmt.Errorf("mark job %d applied: %w", index, err)
	}
	return changed, nil
}

// Now is the service clock in the user's zone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)

// ExtractURL returns the first http(s) link without trailing punctuation.
func ExtractURL(text string) string {
	return strings.TrimRight(urlPattern.FindString(text), ".,;:!?)")
}

var jobKeywords = []string{
	"job title", "position", "company", "responsibilities",
	"requirements", "qualifications", "salary", "apply",
	"deadline", "hiring", "vacancy", "career", "role",
	"work experience", "education", "skills required",
	"employment", "job description", "compensation",
	"benefits", "workplace", "office", "intern", "internship",
}

// LooksLikeJobDescription is true for text over 100 characters that
// mentions at least three job keywords.
func LooksLikeJobDescription(text string) bool {
	if len([]rune(text)) <= 100 {
		return false
	}

	lower := strings.ToLower(text)
	count := 0
	for _, kw := range jobKeywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count >= 3
}
