// Package extractor pulls job fields out of raw posting text. Cheap regex
// heuristics run first; a generative model is only asked when they miss the
// deadline.
package extractor

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	FieldCompany  = "company"
	FieldPosition = "position"
	FieldDeadline = "deadline"
	FieldSalary   = "salary"
	FieldLocation = "location"
)

type Fields struct {
	Company  string
	Position string
	Deadline *time.Time
	Salary   string
	Location string
}

// fill copies every field of other that is still empty in f.
func (f *Fields) fill(other Fields) {
	if f.Company == "" {
		f.Company = other.Company
	}
	if f.Position == "" {
		f.Position = other.Position
	}
	if f.Deadline == nil {
		f.Deadline = other.Deadline
	}
	if f.Salary == "" {
		f.Salary = other.Salary
	}
	if f.Location == "" {
		f.Location = other.Location
	}
}

// Missing lists the names of fields that were not recovered.
func (f Fields) Missing() []string {
	var missing []string
	if f.Company == "" {
		missing = append(missing, FieldCompany)
	}
	if f.Position == "" {
		missing = append(missing, FieldPosition)
	}
	if f.Deadline == nil {
		missing = append(missing, FieldDeadline)
	}
	if f.Salary == "" {
		missing = append(missing, FieldSalary)
	}
	if f.Location == "" {
		missing = append(missing, FieldLocation)
	}
	return missing
}

// Strategy is one extraction attempt. It returns whatever it recovered and
// reports a hit only when a deadline was found.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, text string) (Fields, bool)
}

type Result struct {
	Fields
	// Source names the strategy that produced the deadline, empty on a miss.
	Source  string
	Missing []string
}

type Extractor struct {
	strategies []Strategy
	logger     *zap.Logger
}

func New(logger *zap.Logger, strategies ...Strategy) *Extractor {
	return &Extractor{
		strategies: strategies,
		logger:     logger,
	}
}

// Extract never fails: a total miss still yields a Result listing every
// field as missing.
func (e *Extractor) Extract(ctx context.Context, text string) Result {
	var res Result

	for _, s := range e.strategies {
		fields, hit := s.Extract(ctx, text)
		res.fill(fields)

		e.logger.Debug("extraction strategy finished",
			zap.String("strategy", s.Name()),
			zap.Bool("hit", hit),
		)

		if hit {
			res.Source = s.Name()
			break
		}
	}

	res.Missing = res.Fields.Missing()

	e.logger.Info("job details extracted",
		zap.String("source", res.Source),
		zap.Strings("missing", res.Missing),
	)

	return res
}
