package redis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageTextKey(t *testing.T) {
	a := PageTextKey("https://jobs.example.com/42?utm_source=tg")
	b := PageTextKey("https://jobs.example.com/42?utm_source=tg")
	c := PageTextKey("https://jobs.example.com/43")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "page:"))
	assert.NotContains(t, a, "utm_source")
	assert.Len(t, a, len("page:")+64)
}

func TestRateLimitKey(t *testing.T) {
	assert.Equal(t, "ratelimit:user:42", RateLimitKey(42))
}
