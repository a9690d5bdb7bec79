package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const extractionPrompt = `You extract structured data from job postings.

Read the posting below and return ONLY a JSON object, without markdown and
without any text around it, in exactly this shape:

{
  "company": "employer name or null",
  "position": "job title or null",
  "deadline": "application deadline as YYYY-MM-DD or null",
  "salary": "salary with currency and period or null",
  "location": "job location or null"
}

Rules:
- Look for labels such as "Company:", "Position:", "Apply by:", "Deadline:",
  "Last date:", "Salary:", "Location:", including Bengali labels.
- The company may only be visible in an email domain or a sentence like
  "X is hiring".
- Use null when a value is genuinely absent. Do not guess.

Job posting:
%s`

// AIStrategy asks a generative model for all fields at once. It is meant to
// run after the regex pass misses.
type AIStrategy struct {
	model  llms.Model
	limit  int
	loc    *time.Location
	logger *zap.Logger
}

func NewAIStrategy(model llms.Model, limit int, loc *time.Location, logger *zap.Logger) *AIStrategy {
	return &AIStrategy{
		model:  model,
		limit:  limit,
		loc:    loc,
		logger: logger,
	}
}

func (a *AIStrategy) Name() string {
	return "ai"
}

func (a *AIStrategy) Extract(ctx context.Context, text string) (Fields, bool) {
	if a.model == nil {
		a.logger.Debug("AI extraction disabled")
		return Fields{}, false
	}

	prompt := fmt.Sprintf(extractionPrompt, Truncate(text, a.limit))

	resp, err := llms.GenerateFromSinglePrompt(ctx, a.model, prompt, llms.WithTemperature(0))
	if err != nil {
		a.logger.Error("AI extraction request failed", zap.Error(err))
		return Fields{}, false
	}

	fields, err := a.parseResponse(resp)
	if err != nil {
		a.logger.Error("failed to parse AI response",
			zap.String("response", Truncate(resp, 500)),
			zap.Error(err),
		)
		return Fields{}, false
	}

	return fields, fields.Deadline != nil
}

type aiFields struct {
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Deadline *string `json:"deadline"`
	Salary   *string `json:"salary"`
	Location *string `json:"location"`
}

func (a *AIStrategy) parseResponse(resp string) (Fields, error) {
	raw := stripCodeFence(resp)

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return Fields{}, fmt.Errorf("no JSON object in response")
	}

	var parsed aiFields
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return Fields{}, fmt.Errorf("unmarshal response: %w", err)
	}

	fields := Fields{
		Company:  value(parsed.Company),
		Position: value(parsed.Position),
		Salary:   value(parsed.Salary),
		Location: value(parsed.Location),
	}

	if d := value(parsed.Deadline); d != "" {
		deadline, err := ParseDate(d, a.loc)
		if err != nil {
			a.logger.Warn("AI returned unparsable deadline",
				zap.String("deadline", d),
				zap.Error(err),
			)
		} else {
			fields.Deadline = &deadline
		}
	}

	return fields, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	v := cleanValue(*p)
	if strings.EqualFold(v, "null") || strings.EqualFold(v, "none") || strings.EqualFold(v, "n/a") {
		return ""
	}
	return v
}

// Truncate cuts s to at most limit runes.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
